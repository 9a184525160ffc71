package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// ReportService computes aggregates over the collected dataset via the bulk
// export path. It is read-only and independent of the two acquisition loops.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(ads []*models.Advertising) *models.Report {
	report := &models.Report{
		ListingsByLocation:  make(map[string]int),
		ListingsByScrapeDay: make(map[string]int),
	}

	if len(ads) == 0 {
		return report
	}

	report.TotalListings = len(ads)

	var areaTotal float64
	for _, ad := range ads {
		if ad.Bathrooms != nil || ad.ConstructionYear != nil || ad.EnergeticCertificate != nil {
			report.DetailComplete++
		} else {
			report.DetailPending++
		}

		if ad.Area != nil {
			report.WithArea++
			areaTotal += *ad.Area
			if report.MinArea == 0 || *ad.Area < report.MinArea {
				report.MinArea = *ad.Area
			}
			if *ad.Area > report.MaxArea {
				report.MaxArea = *ad.Area
			}
		}

		if ad.Location != nil {
			report.ListingsByLocation[*ad.Location]++
		}
		report.ListingsByScrapeDay[ad.DateScraped.Format("2006-01-02")]++
	}

	if report.WithArea > 0 {
		report.AvgArea = round2(areaTotal / float64(report.WithArea))
		report.MinArea = round2(report.MinArea)
		report.MaxArea = round2(report.MaxArea)
	}

	return report
}

func (s *ReportService) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 APARTMENT DATASET REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total advertisings    : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Details backfilled    : \033[1m%d\033[0m\n", r.DetailComplete)
	fmt.Printf("  Details pending       : \033[1m%d\033[0m\n", r.DetailPending)
	fmt.Println()

	fmt.Printf("\033[1;33m  Area Statistics (m²)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.WithArea > 0 {
		fmt.Printf("  Average area : \033[1;32m%.2f\033[0m\n", r.AvgArea)
		fmt.Printf("  Minimum area : \033[1;32m%.2f\033[0m\n", r.MinArea)
		fmt.Printf("  Maximum area : \033[1;32m%.2f\033[0m\n", r.MaxArea)
	} else {
		fmt.Printf("  No area data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Locations\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByLocation) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.ListingsByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			return locs[i].count > locs[j].count
		})
		if len(locs) > 10 {
			locs = locs[:10]
		}
		for _, lc := range locs {
			fmt.Printf("  %-40s (%d)\n", truncate(lc.loc, 38), lc.count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Rows by Scrape Day\033[0m\n")
	fmt.Printf("  %s\n", thin)
	var days []string
	for day := range r.ListingsByScrapeDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		fmt.Printf("  %s : %d\n", day, r.ListingsByScrapeDay[day])
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
