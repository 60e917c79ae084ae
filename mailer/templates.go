package mailer

import (
	"fmt"

	"github.com/daneswara/kafe-pos/config"
)

// VerificationJob membangun email verifikasi akun dengan link ke frontend.
func VerificationJob(to, name, token string) Job {
	link := fmt.Sprintf("%s/auth/verify?token=%s", config.Get().FrontendURL, token)
	html := fmt.Sprintf(`
		<p>Halo %s,</p>
		<p>Terima kasih sudah mendaftar. Klik link berikut untuk verifikasi akun Anda:</p>
		<p><a href="%s">Verifikasi Akun</a></p>
		<p>Link berlaku 24 jam. Abaikan email ini jika Anda tidak merasa mendaftar.</p>`,
		name, link)

	return Job{
		To:      to,
		Subject: "Verifikasi Akun Kafe POS",
		HTML:    html,
	}
}

// ResetPasswordJob membangun email reset password.
func ResetPasswordJob(to, name, token string) Job {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", config.Get().FrontendURL, token)
	html := fmt.Sprintf(`
		<p>Halo %s,</p>
		<p>Kami menerima permintaan reset password untuk akun Anda.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>Link berlaku 1 jam. Abaikan email ini jika Anda tidak meminta reset.</p>`,
		name, link)

	return Job{
		To:      to,
		Subject: "Reset Password Kafe POS",
		HTML:    html,
	}
}
