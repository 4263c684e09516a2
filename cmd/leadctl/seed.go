package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadboard/leadboard-server/internal/domain"
)

var (
	seedFirstNames = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Alan", "Radia"}
	seedLastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Turing", "Perlman"}
	seedCompanies  = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries", "Wayne Enterprises", "Cyberdyne"}
	seedTitles     = []string{"CTO", "Head of Sales", "Engineering Manager", "Founder", "Procurement Lead", "Marketing Director"}
	seedCities     = []string{"Berlin", "Lisbon", "Austin", "Toronto", "Singapore", "Nairobi", "Oslo"}
)

func newSeedCmd() *cobra.Command {
	var websites, leads int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample websites and leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if websites < 1 {
				return fmt.Errorf("--websites must be at least 1")
			}
			if leads < 0 {
				return fmt.Errorf("--leads cannot be negative")
			}

			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := commandContext(cmd)

			ids := make([]int64, 0, websites)
			for n := range websites {
				w := &domain.Website{
					URL:         fmt.Sprintf("https://www.site%d.example/team", n+1),
					Description: domain.StringPtr(fmt.Sprintf("Seeded website %d", n+1)),
				}
				if err := e.store.CreateWebsite(ctx, w); err != nil {
					return fmt.Errorf("create website: %w", err)
				}
				ids = append(ids, w.ID)
			}

			for range leads {
				if err := e.store.CreateLead(ctx, randomLead(ids[rand.IntN(len(ids))])); err != nil {
					return fmt.Errorf("create lead: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d websites and %d leads into %s\n", websites, leads, e.cfg.Storage.DatabasePath())
			return nil
		},
	}

	cmd.Flags().IntVar(&websites, "websites", 3, "Number of websites to create")
	cmd.Flags().IntVar(&leads, "leads", 50, "Number of leads to create")

	return cmd
}

// randomLead fills a lead with sample data, leaving some fields empty the way scrapers do.
func randomLead(websiteID int64) *domain.Lead {
	first := pick(seedFirstNames)
	last := pick(seedLastNames)
	company := pick(seedCompanies)

	l := &domain.Lead{
		Name:      domain.StringPtr(first + " " + last),
		Company:   domain.StringPtr(company),
		JobTitle:  domain.StringPtr(pick(seedTitles)),
		Location:  domain.StringPtr(pick(seedCities)),
		WebsiteID: websiteID,
	}

	domainPart := strings.ToLower(strings.ReplaceAll(company, " ", "")) + ".example"
	if rand.IntN(4) > 0 {
		l.Email = domain.StringPtr(strings.ToLower(first+"."+last) + "@" + domainPart)
	}
	if rand.IntN(2) == 0 {
		l.ContactLink = domain.StringPtr("https://" + domainPart + "/contact")
	}
	if rand.IntN(3) == 0 {
		l.Phone = domain.StringPtr(fmt.Sprintf("+1-555-%04d", rand.IntN(10000)))
	}

	return l
}

func pick(values []string) string {
	return values[rand.IntN(len(values))]
}
