/*
Package game
File: catalog.go
Description:
    The narrative event catalog: fixed template pools per rarity tier.
    Templates are never handed out directly; the generator instantiates a
    GameEvent from one, copying the options by value so a resolved event can
    never mutate the catalog underneath it.
*/

package game

// EventTemplate is the static portion of an event: everything except the
// per-instance id, timestamp, and resolution fields.
type EventTemplate struct {
	Title       string
	Description string
	Options     []EventOption
}

// everydayEvents fire ~70% of the time. Low stakes, small rewards.
var everydayEvents = []EventTemplate{
	{
		Title:       "Space Debris",
		Description: "A small cluster of space debris approaches your ship. Attempt evasive maneuvers?",
		Options: []EventOption{
			{Text: "Evade", Effect: "Slight course change, minor fuel consumption", SuccessRate: 80, DarkMatterReward: 10, DistanceEffect: 0},
			{Text: "Ignore", Effect: "Risk of hull damage", SuccessRate: 40, DarkMatterReward: 0, DistanceEffect: -50},
		},
	},
	{
		Title:       "Stray Cat in EVA Suit",
		Description: "You spot a cat floating by in a tiny EVA suit. Its collar says 'Whiskers'. Take it aboard?",
		Options: []EventOption{
			{Text: "Rescue cat", Effect: "New ship companion, occasional distractions", SuccessRate: 100, DarkMatterReward: 30, DistanceEffect: 0},
			{Text: "Let it float by", Effect: "Such is space life", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "Junk Transmission",
		Description: "Your comms pick up a strange signal. It sounds like... 80s synth music?",
		Options: []EventOption{
			{Text: "Boost signal", Effect: "Dance party for one", SuccessRate: 100, DarkMatterReward: 5, DistanceEffect: 0},
			{Text: "Ignore", Effect: "You'll never know what bangers you missed", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "Minor Course Correction",
		Description: "Navigation computer suggests a minor course correction to optimize route.",
		Options: []EventOption{
			{Text: "Adjust course", Effect: "Optimize travel path", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 150},
			{Text: "Keep current course", Effect: "Stay on the longer route", SuccessRate: 100, DarkMatterReward: 5, DistanceEffect: 0},
		},
	},
}

// rareEvents fire ~20% of the time. Real trade-offs, occasional part rewards.
var rareEvents = []EventTemplate{
	{
		Title:       "Derelict Ship",
		Description: "You encounter a abandoned vessel drifting through space. It looks salvageable.",
		Options: []EventOption{
			{Text: "Salvage parts", Effect: "Risk but potential reward", SuccessRate: 60, DarkMatterReward: 80, DistanceEffect: -100, PartReward: "hull-upper"},
			{Text: "Leave it alone", Effect: "Safer option", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "Space Station",
		Description: "A small research station appears on your scanners. They're hailing you.",
		Options: []EventOption{
			{Text: "Dock and trade", Effect: "Exchange resources", SuccessRate: 90, DarkMatterReward: 50, DistanceEffect: -200},
			{Text: "Decline and continue", Effect: "Maintain current course", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 100},
		},
	},
	{
		Title:       "Drifting Manga Collection",
		Description: "A sealed container floats by with 'Property of ISS Recreation Dept' labeled on it. Inside appear to be vintage manga comics.",
		Options: []EventOption{
			{Text: "Collect and read", Effect: "Entertainment boost", SuccessRate: 100, DarkMatterReward: 25, DistanceEffect: 0},
			{Text: "Leave it", Effect: "Stay focused on your mission", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 50},
		},
	},
}

// cosmicEvents fire ~8% of the time. Big numbers, both directions.
var cosmicEvents = []EventTemplate{
	{
		Title:       "Wormhole Detected",
		Description: "Sensors detect a small wormhole forming nearby. It could be a shortcut... or a trap.",
		Options: []EventOption{
			{Text: "Enter wormhole", Effect: "High risk, high reward", SuccessRate: 40, DarkMatterReward: 200, DistanceEffect: 2000},
			{Text: "Avoid wormhole", Effect: "Safe but slower", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "Black Hole Proximity",
		Description: "Your ship is being pulled toward a small black hole. Engines straining!",
		Options: []EventOption{
			{Text: "Full power to engines", Effect: "Try to escape gravitational pull", SuccessRate: 60, DarkMatterReward: 0, DistanceEffect: -500},
			{Text: "Slingshot maneuver", Effect: "Use gravity to boost speed", SuccessRate: 30, DarkMatterReward: 100, DistanceEffect: 1000},
		},
	},
	{
		Title:       "Space Kaiju",
		Description: "An enormous creature that resembles a classic movie monster drifts past your ship. It seems to be asleep.",
		Options: []EventOption{
			{Text: "Take samples", Effect: "Scientific discovery", SuccessRate: 50, DarkMatterReward: 150, DistanceEffect: -300},
			{Text: "Quietly pass by", Effect: "Don't wake the kaiju!", SuccessRate: 90, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "AI Megastructure",
		Description: "You encounter what appears to be a massive computing structure built by an ancient AI civilization.",
		Options: []EventOption{
			{Text: "Connect to network", Effect: "Download data", SuccessRate: 70, DarkMatterReward: 250, DistanceEffect: 0},
			{Text: "Keep distance", Effect: "Avoid potential AI conflicts", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 100},
		},
	},
}

// easterEggEvents fire ~2% of the time.
var easterEggEvents = []EventTemplate{
	{
		Title:       "Space Invaders",
		Description: "A formation of pixelated alien ships approaches in a suspiciously familiar pattern...",
		Options: []EventOption{
			{Text: "Fire pixel cannons", Effect: "Pew pew!", SuccessRate: 75, DarkMatterReward: 80, DistanceEffect: 0},
			{Text: "Hide behind asteroid", Effect: "Wait for them to pass", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: -100},
		},
	},
	{
		Title:       "Monolith Detection",
		Description: "A sleek black monolith floats in space accompanied by classical music.",
		Options: []EventOption{
			{Text: "Touch it", Effect: "Evolutionary leap?", SuccessRate: 50, DarkMatterReward: 200, DistanceEffect: 1000},
			{Text: "Just appreciate from afar", Effect: "It's full of stars!", SuccessRate: 100, DarkMatterReward: 20, DistanceEffect: 0},
		},
	},
	{
		Title:       "Debug Console",
		Description: "Your ship computer glitches, revealing what appears to be developer debug tools. A message reads: 'Hello player, having fun?'",
		Options: []EventOption{
			{Text: "Type 'Yes'", Effect: "Developer Easter Egg", SuccessRate: 100, DarkMatterReward: 42, DistanceEffect: 0},
			{Text: "Close console", Effect: "Return to normal operations", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 0},
		},
	},
	{
		Title:       "Red Pill, Blue Pill",
		Description: "A strange transmission asks if you'd like to know how deep the rabbit hole goes.",
		Options: []EventOption{
			{Text: "Red Pill", Effect: "The truth", SuccessRate: 100, DarkMatterReward: 101, DistanceEffect: -300},
			{Text: "Blue Pill", Effect: "Blissful ignorance", SuccessRate: 100, DarkMatterReward: 0, DistanceEffect: 300},
		},
	},
}

// poolForTier maps a tier name to its template pool.
func poolForTier(tier string) []EventTemplate {
	switch tier {
	case EventRare:
		return rareEvents
	case EventCosmic:
		return cosmicEvents
	case EventEasterEgg:
		return easterEggEvents
	default:
		return everydayEvents
	}
}
