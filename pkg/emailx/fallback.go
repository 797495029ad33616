package emailx

import "strings"

// MaxShortLines bounds a Short fallback email
const MaxShortLines = 8

const longAddendum = `

Additional Information:
- This is a detailed follow-up to our previous discussion
- We have several options available for your consideration
- I'm available to answer any questions you might have
- Please don't hesitate to reach out if you need clarification

I look forward to your response and hope we can move forward with this opportunity.

Thank you for your time and consideration.`

// FallbackGenerator produces an email body without a remote backend
type FallbackGenerator interface {
	Generate(req Request) (string, error)
}

// LocalGenerator renders bodies from the built-in template library
type LocalGenerator struct{}

// Generate implements FallbackGenerator
func (LocalGenerator) Generate(req Request) (string, error) {
	return Generate(req)
}

// Generate renders req from the template library and applies the length
// adjustment. The error is only reachable with a broken template.
func Generate(req Request) (string, error) {
	req = req.Normalized()

	body, err := Lookup(req.EmailType, req.Tone).RenderRequest(req)
	if err != nil {
		return "", err
	}

	return AdjustLength(body, req.Length), nil
}

// AdjustLength applies the length transform to a rendered body
func AdjustLength(body string, length Length) string {
	switch length {
	case LengthShort:
		return shorten(body, MaxShortLines)
	case LengthLong:
		return body + longAddendum
	default:
		return body
	}
}

// shorten keeps at most limit whole lines. The closing block after the last
// blank line is always kept and the rest of the budget is filled from the
// top.
func shorten(body string, limit int) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= limit {
		return body
	}

	lastBlank := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			lastBlank = i
			break
		}
	}

	closing := lines[lastBlank+1:]
	budget := limit - len(closing) - 1
	if lastBlank < 0 || budget <= 0 {
		return strings.Join(lines[:limit], "\n")
	}

	head := lines[:budget]
	for len(head) > 0 && strings.TrimSpace(head[len(head)-1]) == "" {
		head = head[:len(head)-1]
	}

	out := make([]string, 0, limit)
	out = append(out, head...)
	out = append(out, "")
	out = append(out, closing...)
	return strings.Join(out, "\n")
}
