package main

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/summitleadership/summitweb"
)

// defaultPages is the fixed page set the public routes serve. Seeding creates
// any that are missing and never overwrites edited content.
var defaultPages = []summitweb.Page{
	{Slug: "home", Title: "Summit Leadership Group",
		Body: "Practical leadership development for teams that want to grow.\n\nWe design and deliver trainings, retreats, and coaching programs."},
	{Slug: "about", Title: "About Us",
		Body: "Summit Leadership Group was founded to make leadership development practical and accessible."},
	{Slug: "mission", Title: "Our Mission",
		Body: "We believe every team deserves leaders who listen, decide, and grow."},
	{Slug: "programs", Title: "Programs",
		Body: "Our programs range from one-day workshops to multi-month cohorts."},
	{Slug: "calendar", Title: "Calendar",
		Body: "Upcoming trainings and events."},
	{Slug: "gallery", Title: "Gallery",
		Body: "Moments from past trainings and retreats."},
	{Slug: "contact", Title: "Contact",
		Body: "Questions about a program? Send us a message and we will get back to you."},
}

func runSeed() error {
	dbPath := summitweb.EnvOr("DATABASE_PATH", "data/site.db")
	store, err := summitweb.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	created := 0
	for _, p := range defaultPages {
		if _, err := store.GetPage(p.Slug); err == nil {
			continue
		}
		if err := store.SavePage(p); err != nil {
			return fmt.Errorf("seed page %s: %w", p.Slug, err)
		}
		created++
	}
	fmt.Printf("Seeded %d pages (%d already existed)\n", created, len(defaultPages)-created)

	existing, err := store.ListAllTrainings()
	if err != nil {
		return fmt.Errorf("list trainings: %w", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Skipping sample trainings, %d already exist\n", len(existing))
		return nil
	}

	nextMonth := time.Now().AddDate(0, 1, 0)
	samples := []summitweb.Training{
		{
			ID:        ulid.Make().String(),
			Title:     "Leading Through Change",
			Date:      nextMonth.Format("2006-01-02"),
			Location:  "Denver, CO",
			Summary:   "A one-day workshop on guiding teams through uncertainty.",
			Body:      "## What you will learn\n\n- Naming what is changing\n- Communicating decisions\n- Keeping momentum",
			Published: true,
		},
		{
			ID:        ulid.Make().String(),
			Title:     "Mountain Leadership Retreat",
			Date:      nextMonth.AddDate(0, 1, 14).Format("2006-01-02"),
			EndDate:   nextMonth.AddDate(0, 1, 16).Format("2006-01-02"),
			Location:  "Estes Park, CO",
			Summary:   "Three days of reflection, planning, and peer coaching.",
			Body:      "Our flagship retreat for senior leaders.",
			Published: true,
		},
	}
	for _, t := range samples {
		if err := store.SaveTraining(t); err != nil {
			return fmt.Errorf("seed training %s: %w", t.Title, err)
		}
	}
	fmt.Printf("Seeded %d sample trainings\n", len(samples))
	return nil
}
