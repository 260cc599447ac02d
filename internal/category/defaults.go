package category

var defaultTable = New([]Category{
	{
		ID: SpaceRead, Name: "Space Read", Slug: "space_read",
		Columns: []string{"Space Read"},
		Fields: []Field{
			{Key: "live_dribble", Label: "Live Dribble"},
			{Key: "catch", Label: "Catch"},
			{Key: "closeout", Label: "Closeout"},
		},
	},
	{
		ID: DMCatch, Name: "DM Catch", Slug: "dm_catch",
		Columns: []string{"DM Catch"},
		Fields: []Field{
			{Key: "drive", Label: "Drive"},
			{Key: "shoot", Label: "Shoot"},
			{Key: "pass", Label: "Pass"},
		},
	},
	{
		ID: QB12DM, Name: "QB12 DM", Slug: "qb12_dm",
		Columns: []string{"QB12 DM"},
		Fields: []Field{
			{Key: "strong_side", Label: "Strong Side"},
			{Key: "weak_side", Label: "Weak Side"},
			{Key: "roller", Label: "Roller"},
			{Key: "skip", Label: "Skip"},
		},
	},
	{
		ID: Driving, Name: "Driving", Slug: "driving",
		Columns: []string{"Driving"},
		Fields: []Field{
			{Key: "paint_touch", Label: "Paint Touch"},
			{Key: "downhill", Label: "Downhill"},
			{Key: "change_of_pace", Label: "Change of Pace"},
			{Key: "two_feet", Label: "Two Feet"},
		},
	},
	{
		ID: Positioning, Name: "Positioning", Slug: "positioning",
		Columns: []string{"Positioning"},
		Fields: []Field{
			{Key: "spacing", Label: "Spacing"},
			{Key: "corner", Label: "Corner"},
			{Key: "dunker_spot", Label: "Dunker Spot"},
		},
	},
	{
		ID: Transition, Name: "Transition", Slug: "transition",
		Columns: []string{"Transition"},
		Fields: []Field{
			{Key: "sprint", Label: "Sprint"},
			{Key: "run_lanes", Label: "Run Lanes"},
			{Key: "outlet", Label: "Outlet"},
		},
	},
	{
		// The export tool misspells this column header.
		ID: CuttingScreening, Name: "Cutting & Screening", Slug: "cutting_screening",
		Columns: []string{"Cutting & Screeing", "Cutting & Screening"},
		Fields: []Field{
			{Key: "basket_cut", Label: "Basket Cut"},
			{Key: "backdoor", Label: "Backdoor"},
			{Key: "screen_set", Label: "Screen Set"},
			{Key: "slip", Label: "Slip"},
			{Key: "flare", Label: "Flare"},
		},
	},
	{
		ID: Relocation, Name: "Relocation", Slug: "relocation",
		Columns: []string{"Relocation"},
		Fields: []Field{
			{Key: "lift", Label: "Lift"},
			{Key: "drift", Label: "Drift"},
			{Key: "fill", Label: "Fill"},
		},
	},
	{
		ID: Footwork, Name: "Footwork", Slug: "footwork",
		Columns: []string{"Footwork"},
		Fields: []Field{
			{Key: "step_to_ball", Label: "Step to Ball"},
			{Key: "patient_pickup", Label: "Patient Pickup"},
			{Key: "pivot", Label: "Pivot"},
			{Key: "jump_stop", Label: "Jump Stop"},
		},
	},
	{
		ID: Passing, Name: "Passing", Slug: "passing",
		Columns: []string{"Passing"},
		Fields: []Field{
			{Key: "on_target", Label: "On Target"},
			{Key: "on_time", Label: "On Time"},
		},
	},
	{
		ID: Finishing, Name: "Finishing", Slug: "finishing",
		Columns: []string{"Finishing"},
		Fields: []Field{
			{Key: "at_rim", Label: "At Rim"},
			{Key: "through_contact", Label: "Through Contact"},
			{Key: "off_hand", Label: "Off Hand (Weak)"},
		},
	},
})

// Default returns the production category table.
func Default() *Table {
	return defaultTable
}
