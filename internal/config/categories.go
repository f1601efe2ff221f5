package config

// CategoryWeights orders command categories in help listings; unknown
// categories sort first.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"📢 Utilities":    10,
	"🛠️ Maintenance": 60,
	"🧪 Testing":      90,
}
