package model

// RopesRecord is one member line of a seaweed farming CSV
type RopesRecord struct {
	Line    int // 1-based line in the CSV, header included
	Member  string
	Group   string
	Village string
	Gender  string
	Ropes   float64
	Harvest Value // kg, optional column
}

// RopesGroup aggregates members sharing a group or gender
type RopesGroup struct {
	Name    string  `json:"name"`
	Members int     `json:"members"`
	Ropes   float64 `json:"ropes"`
	Mean    float64 `json:"mean"`
}

// RopesBin is one bucket of the ropes-per-member distribution
type RopesBin struct {
	Label   string  `json:"label"`
	Lower   float64 `json:"lower"`
	Upper   Value   `json:"upper"` // missing for the open top bucket
	Members int     `json:"members"`
	Share   float64 `json:"share"`
}

// RopesSummary is the analysis of a ropes CSV
type RopesSummary struct {
	Source  string `json:"source"`
	Members int    `json:"members"`
	Skipped int    `json:"skipped"` // rows without a usable ropes value

	TotalRopes float64 `json:"total_ropes"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	ZeroRopes  int     `json:"zero_ropes"`

	Groups       []RopesGroup `json:"groups"`
	Genders      []RopesGroup `json:"genders"`
	Distribution []RopesBin   `json:"distribution"`

	HasHarvest     bool    `json:"has_harvest"`
	TotalHarvest   float64 `json:"total_harvest"`
	HarvestPerRope Value   `json:"harvest_per_rope"`
}
