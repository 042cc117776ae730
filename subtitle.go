package pagecap

// SubtitleLine is a single time-coded subtitle entry. Start is seconds from
// the beginning of the video; Duration is never negative. Sequences are kept
// in the order they were extracted: DOM-sourced output is de-duplicated,
// never sort-corrected.
type SubtitleLine struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}
