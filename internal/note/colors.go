package note

// Color is one background option offered by the color picker.
type Color struct {
	Key string
	Hex string
}

// Palette lists the background options in picker order.
var Palette = []Color{
	{Key: "coral", Hex: "#77172E"},
	{Key: "peach", Hex: "#692B17"},
	{Key: "sand", Hex: "#7C4A03"},
	{Key: "mint", Hex: "#264D3B"},
	{Key: "sage", Hex: "#0C625D"},
	{Key: "fog", Hex: "#256377"},
	{Key: "storm", Hex: "#284255"},
	{Key: "dusk", Hex: "#472E5B"},
	{Key: "blossom", Hex: "#6C394F"},
	{Key: "clay", Hex: "#4B443A"},
	{Key: "chalk", Hex: "#232427"},
}

// ColorHex returns the hex value for a palette key.
func ColorHex(key string) (string, bool) {
	for _, c := range Palette {
		if c.Key == key {
			return c.Hex, true
		}
	}
	return "", false
}
