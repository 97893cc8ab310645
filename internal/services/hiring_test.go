package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gigflow/backend/internal/models"
)

func TestHiringService_Hire(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	svc := NewHiringService(db, NewNotifyHub())

	gig := createTestGig(t, db, owner.ID, "Build site")
	bobBid := createTestBid(t, db, gig.ID, bob.ID)
	carolBid := createTestBid(t, db, gig.ID, carol.ID)

	hired, err := svc.Hire(bobBid.ID, owner.ID)
	if err != nil {
		t.Fatalf("Hire() error = %v", err)
	}

	if hired.Status != models.BidHired {
		t.Errorf("hired bid status = %q, expected %q", hired.Status, models.BidHired)
	}
	if hired.Freelancer == nil || hired.Freelancer.ID != bob.ID {
		t.Error("freelancer should be resolved on the returned bid")
	}

	var reloadedGig models.Gig
	db.First(&reloadedGig, gig.ID)
	if reloadedGig.Status != models.GigAssigned {
		t.Errorf("gig status = %q, expected %q", reloadedGig.Status, models.GigAssigned)
	}
	if reloadedGig.HiredFreelancerID == nil || *reloadedGig.HiredFreelancerID != bob.ID {
		t.Error("gig should record the hired freelancer")
	}

	var reloadedSibling models.Bid
	db.First(&reloadedSibling, carolBid.ID)
	if reloadedSibling.Status != models.BidRejected {
		t.Errorf("sibling bid status = %q, expected %q", reloadedSibling.Status, models.BidRejected)
	}
}

func TestHiringService_Hire_BidNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	svc := NewHiringService(db, NewNotifyHub())

	_, err := svc.Hire(999, owner.ID)
	assertAppError(t, err, http.StatusNotFound)
}

func TestHiringService_Hire_NotOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	svc := NewHiringService(db, NewNotifyHub())

	gig := createTestGig(t, db, owner.ID, "Build site")
	bid := createTestBid(t, db, gig.ID, bob.ID)

	_, err := svc.Hire(bid.ID, carol.ID)
	assertAppError(t, err, http.StatusForbidden)

	var reloaded models.Bid
	db.First(&reloaded, bid.ID)
	if reloaded.Status != models.BidPending {
		t.Error("failed hire must not change the bid")
	}
}

func TestHiringService_Hire_AlreadyAssigned(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	svc := NewHiringService(db, NewNotifyHub())

	gig := createTestGig(t, db, owner.ID, "Build site")
	bobBid := createTestBid(t, db, gig.ID, bob.ID)
	carolBid := createTestBid(t, db, gig.ID, carol.ID)

	if _, err := svc.Hire(bobBid.ID, owner.ID); err != nil {
		t.Fatalf("first Hire() error = %v", err)
	}

	_, err := svc.Hire(carolBid.ID, owner.ID)
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if appErr.Message != "this gig has already been assigned" {
		t.Errorf("unexpected message %q", appErr.Message)
	}

	// second attempt must not disturb the settled state
	var winner models.Bid
	db.First(&winner, bobBid.ID)
	if winner.Status != models.BidHired {
		t.Errorf("winning bid status = %q after failed re-hire", winner.Status)
	}
	var gigAfter models.Gig
	db.First(&gigAfter, gig.ID)
	if gigAfter.HiredFreelancerID == nil || *gigAfter.HiredFreelancerID != bob.ID {
		t.Error("gig assignment must survive a failed re-hire")
	}
}

func TestHiringService_Hire_SameBidTwice(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	svc := NewHiringService(db, NewNotifyHub())

	gig := createTestGig(t, db, owner.ID, "Build site")
	bid := createTestBid(t, db, gig.ID, bob.ID)

	if _, err := svc.Hire(bid.ID, owner.ID); err != nil {
		t.Fatalf("first Hire() error = %v", err)
	}

	_, err := svc.Hire(bid.ID, owner.ID)
	assertAppError(t, err, http.StatusBadRequest)
}

func TestHiringService_Hire_Concurrent(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	svc := NewHiringService(db, NewNotifyHub())

	gig := createTestGig(t, db, owner.ID, "Build site")
	bobBid := createTestBid(t, db, gig.ID, bob.ID)
	carolBid := createTestBid(t, db, gig.ID, carol.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, bidID := range []uint{bobBid.ID, carolBid.ID} {
		wg.Add(1)
		go func(i int, bidID uint) {
			defer wg.Done()
			_, errs[i] = svc.Hire(bidID, owner.ID)
		}(i, bidID)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assertAppError(t, err, http.StatusBadRequest)
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly one losing hire, got %d failures", failures)
	}

	var hiredCount, rejectedCount int64
	db.Model(&models.Bid{}).Where("gig_id = ? AND status = ?", gig.ID, models.BidHired).Count(&hiredCount)
	db.Model(&models.Bid{}).Where("gig_id = ? AND status = ?", gig.ID, models.BidRejected).Count(&rejectedCount)
	if hiredCount != 1 {
		t.Errorf("expected exactly 1 hired bid, got %d", hiredCount)
	}
	if rejectedCount != 1 {
		t.Errorf("expected exactly 1 rejected bid, got %d", rejectedCount)
	}

	var gigAfter models.Gig
	db.First(&gigAfter, gig.ID)
	if gigAfter.Status != models.GigAssigned || gigAfter.HiredFreelancerID == nil {
		t.Error("gig should end up assigned with a hired freelancer recorded")
	}
}

func TestHiringService_Hire_NotifiesFreelancer(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	hub := NewNotifyHub()
	svc := NewHiringService(db, hub)

	gig := createTestGig(t, db, owner.ID, "Build site")
	bid := createTestBid(t, db, gig.ID, bob.ID)

	ch := hub.Register(bob.ID)
	defer hub.Unregister(bob.ID, ch)

	if _, err := svc.Hire(bid.ID, owner.ID); err != nil {
		t.Fatalf("Hire() error = %v", err)
	}

	select {
	case event := <-ch:
		if event.Type != "hired" {
			t.Errorf("event type = %q, expected %q", event.Type, "hired")
		}
		if event.GigID != gig.ID || event.GigTitle != "Build site" {
			t.Errorf("event references gig %d %q", event.GigID, event.GigTitle)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for hired notification")
	}
}

// Full flow: post, bid, hire, then verify the late bidder and the owner
// both hit the closed-gig guards.
func TestHiring_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	hub := NewNotifyHub()
	gigs := NewGigService(db)
	bids := NewBidService(db)
	hiring := NewHiringService(db, hub)

	gig, err := gigs.Create(alice.ID, &CreateGigRequest{
		Title:       "Logo design",
		Description: "Need a fresh logo",
		Budget:      floatPtr(300),
	})
	if err != nil {
		t.Fatalf("create gig: %v", err)
	}

	bobBid, err := bids.Create(bob.ID, &CreateBidRequest{
		GigID:         gig.ID,
		Message:       "Portfolio attached",
		ProposedPrice: floatPtr(250),
	})
	if err != nil {
		t.Fatalf("bob bid: %v", err)
	}

	ch := hub.Register(bob.ID)
	defer hub.Unregister(bob.ID, ch)

	if _, err := hiring.Hire(bobBid.ID, alice.ID); err != nil {
		t.Fatalf("hire: %v", err)
	}

	select {
	case event := <-ch:
		if event.GigID != gig.ID {
			t.Errorf("notification for gig %d, expected %d", event.GigID, gig.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for hired notification")
	}

	// carol arrives after the hire
	_, err = bids.Create(carol.ID, &CreateBidRequest{
		GigID:         gig.ID,
		Message:       "Am I too late?",
		ProposedPrice: floatPtr(200),
	})
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if appErr.Message != "this gig is no longer accepting bids" {
		t.Errorf("unexpected message %q", appErr.Message)
	}

	// assigned gigs cannot be removed
	err = gigs.Delete(gig.ID, alice.ID)
	appErr = assertAppError(t, err, http.StatusBadRequest)
	if appErr.Message != "cannot delete an assigned gig" {
		t.Errorf("unexpected message %q", appErr.Message)
	}

	// the assigned gig stays out of the open listing
	open, err := gigs.ListOpen("")
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	for _, g := range open {
		if g.ID == gig.ID {
			t.Error("assigned gig must not appear in the open listing")
		}
	}
}
