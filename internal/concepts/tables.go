package concepts

// synonym maps a free-text term to a canonical concept.
type synonym struct {
	term      string
	canonical string
}

// muscleSynonyms maps query words to canonical muscle names as they appear
// in catalog primary/secondary muscle tags.
var muscleSynonyms = []synonym{
	{"chest", "chest"},
	{"pec", "chest"},
	{"pecs", "chest"},
	{"pectoral", "chest"},
	{"lats", "lats"},
	{"latissimus", "lats"},
	{"upper back", "middle back"},
	{"middle back", "middle back"},
	{"rhomboid", "middle back"},
	{"lower back", "lower back"},
	{"erector", "lower back"},
	{"trap", "traps"},
	{"traps", "traps"},
	{"trapezius", "traps"},
	{"shoulder", "shoulders"},
	{"shoulders", "shoulders"},
	{"delt", "shoulders"},
	{"delts", "shoulders"},
	{"deltoid", "shoulders"},
	{"bicep", "biceps"},
	{"biceps", "biceps"},
	{"bis", "biceps"},
	{"tricep", "triceps"},
	{"triceps", "triceps"},
	{"tris", "triceps"},
	{"forearm", "forearms"},
	{"grip", "forearms"},
	{"quad", "quadriceps"},
	{"quads", "quadriceps"},
	{"quadricep", "quadriceps"},
	{"hamstring", "hamstrings"},
	{"hams", "hamstrings"},
	{"glute", "glutes"},
	{"glutes", "glutes"},
	{"butt", "glutes"},
	{"calf", "calves"},
	{"calves", "calves"},
	{"abs", "abdominals"},
	{"abdominal", "abdominals"},
	{"core", "abdominals"},
	{"oblique", "abdominals"},
	{"adductor", "adductors"},
	{"abductor", "abductors"},
	{"neck", "neck"},
}

var equipmentSynonyms = []synonym{
	{"barbell", "barbell"},
	{"bb", "barbell"},
	{"dumbbell", "dumbbell"},
	{"db", "dumbbell"},
	{"dumbell", "dumbbell"},
	{"kettlebell", "kettlebells"},
	{"kb", "kettlebells"},
	{"cable", "cable"},
	{"machine", "machine"},
	{"smith", "machine"},
	{"band", "bands"},
	{"bands", "bands"},
	{"ez bar", "e-z curl bar"},
	{"ez", "e-z curl bar"},
	{"bodyweight", "body only"},
	{"body weight", "body only"},
	{"bw", "body only"},
	{"calisthenics", "body only"},
	{"medicine ball", "medicine ball"},
	{"med ball", "medicine ball"},
	{"foam roller", "foam roll"},
	{"exercise ball", "exercise ball"},
	{"swiss ball", "exercise ball"},
}

var forceSynonyms = []synonym{
	{"push", "push"},
	{"press", "push"},
	{"pull", "pull"},
	{"row", "pull"},
	{"curl", "pull"},
	{"hold", "static"},
	{"static", "static"},
	{"isometric", "static"},
	{"plank", "static"},
}

var mechanicSynonyms = []synonym{
	{"compound", "compound"},
	{"multi joint", "compound"},
	{"isolation", "isolation"},
	{"single joint", "isolation"},
	{"isolate", "isolation"},
}

var categorySynonyms = []synonym{
	{"stretch", "stretching"},
	{"mobility", "stretching"},
	{"cardio", "cardio"},
	{"conditioning", "cardio"},
	{"plyo", "plyometrics"},
	{"plyometric", "plyometrics"},
	{"jump", "plyometrics"},
	{"powerlifting", "powerlifting"},
	{"olympic", "olympic weightlifting"},
	{"clean", "olympic weightlifting"},
	{"snatch", "olympic weightlifting"},
	{"strongman", "strongman"},
	{"strength", "strength"},
}

// bucketOfMuscle groups canonical muscles into the coarse buckets offered
// as refiners.
var bucketOfMuscle = map[string]string{
	"chest":                 "chest",
	"lats":                  "back",
	"middle back":           "back",
	"lower back":            "back",
	"traps":                 "back",
	"back":                  "back",
	"upper back":            "back",
	"shoulders":             "shoulders",
	"delts":                 "shoulders",
	"neck":                  "shoulders",
	"biceps":                "arms",
	"triceps":               "arms",
	"forearms":              "arms",
	"upper arms":            "arms",
	"lower arms":            "arms",
	"quadriceps":            "legs",
	"quads":                 "legs",
	"hamstrings":            "legs",
	"glutes":                "legs",
	"calves":                "legs",
	"adductors":             "legs",
	"abductors":             "legs",
	"upper legs":            "legs",
	"lower legs":            "legs",
	"abdominals":            "core",
	"abs":                   "core",
	"waist":                 "core",
	"cardio":                "cardio",
	"cardiovascular system": "cardio",
}

// bucketHints maps query words that name a bucket directly.
var bucketHints = map[string]string{
	"chest":     "chest",
	"back":      "back",
	"shoulder":  "shoulders",
	"shoulders": "shoulders",
	"arm":       "arms",
	"arms":      "arms",
	"leg":       "legs",
	"legs":      "legs",
	"core":      "core",
	"abs":       "core",
	"cardio":    "cardio",
}

// equipmentLabels normalizes raw catalog equipment strings into the labels
// offered as refiners.
var equipmentLabels = map[string]string{
	"barbell":          "barbell",
	"olympic barbell":  "barbell",
	"dumbbell":         "dumbbell",
	"dumbbells":        "dumbbell",
	"kettlebell":       "kettlebell",
	"kettlebells":      "kettlebell",
	"cable":            "cable",
	"machine":          "machine",
	"smith machine":    "machine",
	"leverage machine": "machine",
	"sled machine":     "machine",
	"body only":        "bodyweight",
	"body weight":      "bodyweight",
	"bodyweight":       "bodyweight",
	"bands":            "band",
	"band":             "band",
	"resistance band":  "band",
	"e-z curl bar":     "ez bar",
	"ez barbell":       "ez bar",
	"ez bar":           "ez bar",
	"medicine ball":    "medicine ball",
	"exercise ball":    "exercise ball",
	"stability ball":   "exercise ball",
	"foam roll":        "foam roll",
}
