package shop

// Log messages
const (
	LogMsgRedeemCalled = "Redeem called"
	LogMsgItemRedeemed = "Shop item redeemed"
)

// Error messages
const (
	ErrMsgYCShortFmt = "%w: costs %d YC, have %d"
)
