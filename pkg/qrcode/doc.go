// Package qrcode renders provisioning URIs as QR codes for authenticator
// apps.
//
// Two renderers are provided. ChartRenderer produces a URL pointing at a
// remote chart service that draws the code, which is how the legacy
// enrollment page displayed it. InlineRenderer draws the PNG locally with
// github.com/skip2/go-qrcode and returns a data URI that can be embedded in
// an <img> tag without a third-party request.
//
//	r := qrcode.NewInlineRenderer(166)
//	src, err := r.Render(uri)
//
// Generate and GenerateBase64Image remain available for callers that need
// the raw PNG.
package qrcode
