package router

// TrainingData is the fixed call-routing corpus: nine utterances across
// three intents.
var TrainingData = []Example{
	{Text: "buy subscription", Label: "sales"},
	{Text: "price cost", Label: "sales"},
	{Text: "how much", Label: "sales"},
	{Text: "not working error", Label: "support"},
	{Text: "help me problem", Label: "support"},
	{Text: "login failed", Label: "support"},
	{Text: "angry manager", Label: "escalation"},
	{Text: "urgent fail", Label: "escalation"},
	{Text: "lawsuit legal", Label: "escalation"},
}
