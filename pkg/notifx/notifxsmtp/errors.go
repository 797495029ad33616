package notifxsmtp

import "github.com/Abraxas-365/mailsmith/pkg/errx"

var smtpErrors = errx.NewRegistry("NOTIFX_SMTP")

var (
	ErrSendFailed = smtpErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "SMTP send email failed")
)
