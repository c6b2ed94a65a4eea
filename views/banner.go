package views

// BannerKind selects the banner style.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the message shown above the form after a submit.
type Banner struct {
	Kind BannerKind
	Text string
}

// SuccessBanner returns a success banner with text.
func SuccessBanner(text string) *Banner {
	return &Banner{Kind: BannerSuccess, Text: text}
}

// ErrorBanner returns an error banner with text.
func ErrorBanner(text string) *Banner {
	return &Banner{Kind: BannerError, Text: text}
}

// IsError reports whether b is an error banner.
func (b *Banner) IsError() bool {
	return b != nil && b.Kind == BannerError
}
