package playbook

import "github.com/coveyrise/steward/internal/domain"

// DefaultCatalog returns the built-in playbook set. Tasks and practices are
// seeded in the listed order; practice codes reference NRCS practice standards.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Playbook{
			Key:   "upland-habitat",
			Label: "Upland Habitat (Disturbance-based)",
			Tasks: []TaskBlueprint{
				{Title: "Baseline vegetation & structure assessment", Notes: "Plots/transects, photo points.", DueOffsetDays: 14},
				{Title: "Fuel & ladder analysis + thinning prescription", Notes: "Target basal area, leave trees, regen patches.", DueOffsetDays: 21},
				{Title: "Prescribed fire plan & burn unit map", Notes: "Seasonality, return interval, control lines.", DueOffsetDays: 28},
				{Title: "Native forb/grass establishment plan", Notes: "Species list, rates, vendor sourcing.", DueOffsetDays: 35},
				{Title: "Game camera + call point monitoring setup", Notes: "Quail, songbirds, small mammals baseline.", DueOffsetDays: 45},
			},
			Practices: []PracticeBlueprint{
				{Program: domain.ProgramEQIP, Code: "647", Title: "Early Successional Habitat", Quantity: domain.FloatPtr(40), Unit: "ac", EstimatedRate: domain.FloatPtr(150)},
				{Program: domain.ProgramEQIP, Code: "314", Title: "Brush Management", Quantity: domain.FloatPtr(25), Unit: "ac", EstimatedRate: domain.FloatPtr(120)},
			},
		},
		Playbook{
			Key:   "riparian-buffer",
			Label: "Riparian Buffer (Bank Stabilization + Shade)",
			Tasks: []TaskBlueprint{
				{Title: "Stream reach assessment", Notes: "Bank height ratio, BEHI/Rosgen notes, buffer width targets.", DueOffsetDays: 14},
				{Title: "Buffer layout & species plan", Notes: "Native canopy/midstory/understory mix.", DueOffsetDays: 21},
				{Title: "Livestock exclusion / fence options", Notes: "Crossings, off-channel water.", DueOffsetDays: 28},
				{Title: "Erosion control + live staking plan", Notes: "Coir, fascines, willow/alders where appropriate.", DueOffsetDays: 28},
				{Title: "Shade & temperature monitoring plan", Notes: "HOBO loggers, seasonal checks.", DueOffsetDays: 40},
			},
			Practices: []PracticeBlueprint{
				{Program: domain.ProgramCRP, Code: "391", Title: "Riparian Forest Buffer", Quantity: domain.FloatPtr(10), Unit: "ac", EstimatedRate: domain.FloatPtr(400)},
			},
		},
		Playbook{
			Key:   "waterfowl-wetland",
			Label: "Waterfowl Wetland (Hydro + Food Base)",
			Tasks: []TaskBlueprint{
				{Title: "Hydrologic recon + topo review", Notes: "Boards/structures, drawdown timing.", DueOffsetDays: 14},
				{Title: "Moist-soil plant community plan", Notes: "Disking/mowing schedule, seed bank.", DueOffsetDays: 21},
				{Title: "Invasive control plan", Notes: "Target species, intervals, monitoring.", DueOffsetDays: 28},
				{Title: "Water management calendar", Notes: "Seasonal flooding, spring drawdown.", DueOffsetDays: 35},
				{Title: "Waterbird monitoring protocol", Notes: "Monthly counts, photo points.", DueOffsetDays: 45},
			},
			Practices: []PracticeBlueprint{
				{Program: domain.ProgramACEPWRE, Title: "Wetland Reserve Easement (restoration)", Quantity: domain.FloatPtr(30), Unit: "ac", EstimatedRate: domain.FloatPtr(0)},
				{Program: domain.ProgramEQIP, Code: "647", Title: "Early Successional (moist-soil units)", Quantity: domain.FloatPtr(15), Unit: "ac", EstimatedRate: domain.FloatPtr(150)},
			},
		},
	)
}
