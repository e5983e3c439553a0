package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/feed"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/logger"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/firestore"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/memory"
)

var (
	eventNames = []string{
		"Study Jam", "Open Mic Night", "Intramural Soccer", "Hack Night",
		"Career Fair Prep", "Board Game Social", "5K Fun Run", "Guest Lecture",
		"Cooking Workshop", "Movie Marathon", "Resume Review", "Trivia Night",
	}
	locations = []string{
		"Illini Union", "Siebel Center", "Grainger Library", "ARC",
		"Foellinger Auditorium", "Campus Instructional Facility",
	}
	organizations = []string{"acm", "wcs", "illini-esports", "club-running"}
	platforms     = []string{"discord", "slack"}
)

func randomEvent(rng *rand.Rand, now time.Time, users []string) map[string]interface{} {
	// Events spread over the next 14 days so some fall inside the popular
	// window and some outside it.
	start := now.Add(time.Duration(rng.Intn(14*24)) * time.Hour)
	end := start.Add(time.Duration(1+rng.Intn(4)) * time.Hour)

	attendees := make([]string, 0)
	for _, user := range users {
		if rng.Intn(3) == 0 {
			attendees = append(attendees, user)
		}
	}

	categories := []string{domain.InterestCategories[rng.Intn(len(domain.InterestCategories))]}
	if rng.Intn(2) == 0 {
		categories = append(categories, domain.InterestCategories[rng.Intn(len(domain.InterestCategories))])
	}

	hostedByOrg := ""
	if rng.Intn(3) == 0 {
		hostedByOrg = organizations[rng.Intn(len(organizations))]
	}

	var integrationPlatforms []string
	if hostedByOrg != "" && rng.Intn(2) == 0 {
		integrationPlatforms = []string{platforms[rng.Intn(len(platforms))]}
	}

	discovery := "public"
	if rng.Intn(5) == 0 {
		discovery = "private"
	}

	return map[string]interface{}{
		"name":                 eventNames[rng.Intn(len(eventNames))],
		"description":          "Seeded test event",
		"date":                 start.Format("2006-01-02"),
		"startTime":            start.UTC().Format(time.RFC3339),
		"endTime":              end.UTC().Format(time.RFC3339),
		"location":             locations[rng.Intn(len(locations))],
		"categories":           categories,
		"createdBy":            users[rng.Intn(len(users))],
		"hostedByOrg":          hostedByOrg,
		"attendees":            attendees,
		"attendeesCount":       len(attendees),
		"discovery":            discovery,
		"pendingApproval":      false,
		"integrationPlatforms": integrationPlatforms,
	}
}

func main() {
	eventCount := flag.Int("events", 100, "number of events to seed")
	userCount := flag.Int("users", 10, "number of users to seed")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	dryRun := flag.Bool("dry-run", false, "seed an in-memory store and print a sample feed instead of writing to Firestore")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var documentStore store.Client
	if *dryRun {
		documentStore = memory.New()
	} else {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load config", zap.Error(err))
		}
		firestoreClient, err := firestore.NewClient(ctx, &cfg.Firestore, log)
		if err != nil {
			log.Fatal("Failed to create Firestore client", zap.Error(err))
		}
		defer func() { _ = firestoreClient.Close() }()
		documentStore = firestore.NewStore(firestoreClient, log)
	}

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC()

	users := make([]string, *userCount)
	for i := range users {
		users[i] = fmt.Sprintf("user%d", i+1)
	}

	eventIDs := make([]string, 0, *eventCount)
	for i := 0; i < *eventCount; i++ {
		doc := randomEvent(rng, now, users)
		id, err := documentStore.CreateDocument(ctx, "events", doc)
		if err != nil {
			log.Fatal("Failed to seed event", zap.Error(err))
		}
		eventIDs = append(eventIDs, id)
	}
	log.Info("Seeded events", zap.Int("count", len(eventIDs)))

	for i, netID := range users {
		interests := []string{
			domain.InterestCategories[rng.Intn(len(domain.InterestCategories))],
			domain.InterestCategories[rng.Intn(len(domain.InterestCategories))],
		}

		var friends []string
		for _, other := range users {
			if other != netID && rng.Intn(3) == 0 {
				friends = append(friends, other)
			}
		}

		var yourEvents []string
		for _, eventID := range eventIDs {
			if rng.Intn(10) == 0 {
				yourEvents = append(yourEvents, eventID)
			}
		}

		profile := map[string]interface{}{
			"netID":               netID,
			"fullName":            fmt.Sprintf("Test User %d", i+1),
			"interests":           interests,
			"joinedOrganizations": []string{organizations[rng.Intn(len(organizations))]},
			"friends":             friends,
			"yourEvents":          yourEvents,
		}
		if err := documentStore.SetDocument(ctx, "users", netID, profile); err != nil {
			log.Fatal("Failed to seed user", zap.Error(err))
		}
	}
	log.Info("Seeded users", zap.Int("count", len(users)))

	if !*dryRun {
		return
	}

	// Dry run: assemble one feed against the seeded in-memory store so the
	// output can be eyeballed.
	assembler := feed.NewAssembler(documentStore, log)
	userDoc, err := documentStore.GetDocument(ctx, "users", users[0])
	if err != nil {
		log.Fatal("Failed to load seeded user", zap.Error(err))
	}
	profile := domain.UserFromDocument(userDoc.ID, userDoc.Data)

	result, err := assembler.FetchFeed(ctx, feed.Request{
		UserID:              profile.NetID,
		Interests:           profile.Interests,
		JoinedOrganizations: profile.JoinedOrganizations,
		Friends:             profile.Friends,
	})
	if err != nil {
		log.Fatal("Failed to assemble sample feed", zap.Error(err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatal("Failed to encode sample feed", zap.Error(err))
	}
}
