package leadfilter

import (
	"slices"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/dto"
)

// FilterOptions lists the values the company and website filters can take.
type FilterOptions struct {
	Companies []string `json:"companies"`
	Websites  []string `json:"websites"`
	PageSizes []int    `json:"pageSizes"`
}

// Options collects sorted, unique, non-empty companies and website hostnames.
func Options(views []*dto.LeadView) FilterOptions {
	companies := make(map[string]struct{})
	hosts := make(map[string]struct{})

	for _, v := range views {
		if c := domain.Deref(v.Company); c != "" {
			companies[c] = struct{}{}
		}
		if h := Hostname(v.WebsiteURL); h != "" {
			hosts[h] = struct{}{}
		}
	}

	return FilterOptions{
		Companies: sortedKeys(companies),
		Websites:  sortedKeys(hosts),
		PageSizes: slices.Clone(PageSizes),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
