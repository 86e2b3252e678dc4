package analysis

// Color is the severity tag returned by the model.
type Color string

const (
	ColorGreen  Color = "GREEN"
	ColorOrange Color = "ORANGE"
	ColorRed    Color = "RED"
)

// Result is the structured reply shape shared by model output and the
// fallback payloads.
type Result struct {
	Reply   string  `json:"reply"`
	MHScore float64 `json:"mhScore"`
	PHScore float64 `json:"phScore"`
	Color   Color   `json:"color"`
}

const (
	BusyReply           = "The service is temporarily busy. Please try again in a moment."
	ErrorReply          = "I'm having trouble connecting to my brain right now. Please try again later."
	InvalidRequestReply = "Please describe your symptoms or stress levels so I can help."
)

// BusyResult is sent with HTTP 429.
func BusyResult() Result {
	return Result{Reply: BusyReply, Color: ColorOrange}
}

// ErrorResult is sent with HTTP 500.
func ErrorResult() Result {
	return Result{Reply: ErrorReply, Color: ColorRed}
}

// InvalidRequestResult is sent with HTTP 400.
func InvalidRequestResult() Result {
	return Result{Reply: InvalidRequestReply, Color: ColorRed}
}
