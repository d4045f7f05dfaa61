package constants

// Technique is a filming technique detected in script text.
type Technique string

const (
	Moco       Technique = "moco"
	Drone      Technique = "drone"
	Tracking   Technique = "tracking"
	VFX        Technique = "vfx"
	NightShoot Technique = "night_shoot"
	Underwater Technique = "underwater"
	Crane      Technique = "crane"
	Steadicam  Technique = "steadicam"
	Handheld   Technique = "handheld"
	SlowMotion Technique = "slow_motion"
	TimeLapse  Technique = "time_lapse"
)

// TechniqueKeywords is ordered; detection output follows this order.
var TechniqueKeywords = []struct {
	Technique Technique
	Variants  []string
}{
	{Moco, []string{"moco", "motion control", "mo-co"}},
	{Drone, []string{"drone", "aerial", "uav"}},
	{Tracking, []string{"tracking shot", "tracking", "dolly track"}},
	{VFX, []string{"vfx", "visual effects", "green screen", "greenscreen", "cgi"}},
	{NightShoot, []string{"night shoot", "night exterior", "night int", "night ext"}},
	{Underwater, []string{"underwater", "submerged"}},
	{Crane, []string{"crane shot", "crane", "jib"}},
	{Steadicam, []string{"steadicam", "steadi"}},
	{Handheld, []string{"handheld", "hand held"}},
	{SlowMotion, []string{"slow motion", "slow-motion", "high speed", "phantom"}},
	{TimeLapse, []string{"time lapse", "time-lapse", "timelapse"}},
}

// Location is a coarse shooting-location type.
type Location string

const (
	Studio  Location = "studio"
	Outdoor Location = "outdoor"
	Indoor  Location = "indoor"
)

// LocationKeywords is evaluated independently per location.
var LocationKeywords = []struct {
	Location Location
	Variants []string
}{
	{Studio, []string{"studio", "sound stage"}},
	{Outdoor, []string{"exterior", "ext.", "outdoor", "location"}},
	{Indoor, []string{"interior", "int."}},
}

// Talent and prop word lists, matched as substrings.
var (
	ChildWords   = []string{"child", "kid", "baby", "infant"}
	AnimalWords  = []string{"dog", "cat", "horse", "animal"}
	VehicleWords = []string{"car", "vehicle", "truck", "motorcycle"}
)
