package catalog

// fallbackEntry is a compact description of a built-in exercise.
type fallbackEntry struct {
	name      string
	equipment string
	target    string
	bodyPart  string
	primary   []string
	secondary []string
	force     string
	mechanic  string
	anchor    bool
}

// fallbackEntries is used whenever the external catalog is unavailable.
var fallbackEntries = []fallbackEntry{
	{"Squat", "barbell", "quads", "upper legs", []string{"quadriceps"}, []string{"glutes", "hamstrings"}, "push", "compound", true},
	{"Front Squat", "barbell", "quads", "upper legs", []string{"quadriceps"}, []string{"glutes"}, "push", "compound", false},
	{"Goblet Squat", "kettlebell", "quads", "upper legs", []string{"quadriceps"}, []string{"glutes"}, "push", "compound", false},
	{"Smith Machine Squat", "smith machine", "quads", "upper legs", []string{"quadriceps"}, []string{"glutes"}, "push", "compound", false},
	{"Bench Press", "barbell", "pectorals", "chest", []string{"chest"}, []string{"triceps", "shoulders"}, "push", "compound", true},
	{"Dumbbell Bench Press", "dumbbell", "pectorals", "chest", []string{"chest"}, []string{"triceps", "shoulders"}, "push", "compound", false},
	{"Incline Bench Press", "barbell", "pectorals", "chest", []string{"chest"}, []string{"shoulders", "triceps"}, "push", "compound", false},
	{"Smith Machine Bench Press", "smith machine", "pectorals", "chest", []string{"chest"}, []string{"triceps"}, "push", "compound", false},
	{"Deadlift", "barbell", "glutes", "upper legs", []string{"lower back"}, []string{"hamstrings", "glutes"}, "pull", "compound", true},
	{"Romanian Deadlift", "barbell", "hamstrings", "upper legs", []string{"hamstrings"}, []string{"glutes", "lower back"}, "pull", "compound", true},
	{"Overhead Press", "barbell", "delts", "shoulders", []string{"shoulders"}, []string{"triceps"}, "push", "compound", true},
	{"Lateral Raise", "dumbbell", "delts", "shoulders", []string{"shoulders"}, nil, "push", "isolation", false},
	{"Barbell Row", "barbell", "upper back", "back", []string{"middle back"}, []string{"lats", "biceps"}, "pull", "compound", true},
	{"Lat Pulldown", "cable", "lats", "back", []string{"lats"}, []string{"biceps"}, "pull", "compound", true},
	{"Pull Up", "body weight", "lats", "back", []string{"lats"}, []string{"biceps"}, "pull", "compound", true},
	{"Chin Up", "body weight", "lats", "back", []string{"lats"}, []string{"biceps"}, "pull", "compound", true},
	{"Face Pull", "cable", "delts", "shoulders", []string{"shoulders"}, []string{"traps"}, "pull", "isolation", false},
	{"Dip", "body weight", "triceps", "upper arms", []string{"triceps"}, []string{"chest"}, "push", "compound", true},
	{"Push Up", "body weight", "pectorals", "chest", []string{"chest"}, []string{"triceps"}, "push", "compound", true},
	{"Barbell Curl", "barbell", "biceps", "upper arms", []string{"biceps"}, []string{"forearms"}, "pull", "isolation", true},
	{"Dumbbell Curl", "dumbbell", "biceps", "upper arms", []string{"biceps"}, []string{"forearms"}, "pull", "isolation", false},
	{"Triceps Pushdown", "cable", "triceps", "upper arms", []string{"triceps"}, nil, "push", "isolation", false},
	{"Leg Press", "leverage machine", "quads", "upper legs", []string{"quadriceps"}, []string{"glutes"}, "push", "compound", false},
	{"Leg Curl", "leverage machine", "hamstrings", "upper legs", []string{"hamstrings"}, nil, "pull", "isolation", false},
	{"Leg Extension", "leverage machine", "quads", "upper legs", []string{"quadriceps"}, nil, "push", "isolation", false},
	{"Walking Lunge", "dumbbell", "glutes", "upper legs", []string{"quadriceps"}, []string{"glutes"}, "push", "compound", false},
	{"Hip Thrust", "barbell", "glutes", "upper legs", []string{"glutes"}, []string{"hamstrings"}, "push", "compound", true},
	{"Standing Calf Raise", "leverage machine", "calves", "lower legs", []string{"calves"}, nil, "push", "isolation", false},
	{"Plank", "body weight", "abs", "waist", []string{"abdominals"}, nil, "static", "isolation", false},
	{"Cable Fly", "cable", "pectorals", "chest", []string{"chest"}, nil, "push", "isolation", false},
}

// Fallback returns the built-in catalog.
func Fallback() []Exercise {
	out := make([]Exercise, 0, len(fallbackEntries))
	for _, f := range fallbackEntries {
		out = append(out, NewSystem(
			"sys-"+slug(f.name),
			f.name,
			nil,
			Tags{
				PrimaryMuscles:   f.primary,
				SecondaryMuscles: f.secondary,
				Equipment:        f.equipment,
				Force:            f.force,
				Mechanic:         f.mechanic,
				Category:         "strength",
			},
			f.anchor,
			SystemFields{Target: f.target, BodyPart: f.bodyPart},
		))
	}
	return out
}
