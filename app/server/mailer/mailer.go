package mailer

import (
	"fmt"

	"news-backend/app/server/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer 通过 SMTP 投递确认注册 / 重设密码邮件
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	publicURL string
	l         *zap.Logger
}

func New(host string, port int, username, password, from, publicURL string, l *zap.Logger) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		from:      from,
		publicURL: publicURL,
		l:         l,
	}
}

// Send 按类型投递带一次性 token 链接的邮件
// 原始 token 只出现在这封邮件里，发送失败由调用方负责补偿回滚
func (m *Mailer) Send(kind string, user *models.User, rawToken string) error {
	subject, body, err := buildBody(kind, user.Name, m.publicURL, rawToken)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.l.Info("email sent",
		zap.String("kind", kind),
		zap.Uint("userID", user.ID),
	)

	return nil
}

func buildBody(kind, name, publicURL, rawToken string) (subject string, body string, err error) {
	var intro, action, path string

	switch kind {
	case models.TokenTypeRegisterConfirm:
		subject = "Confirm your registration"
		intro = "Welcome! One last step: confirm your registration to activate your account."
		action = "Confirm my registration"
		path = "/register/confirm/"
	case models.TokenTypePasswordReset:
		subject = "Reset your password"
		intro = "A password reset was requested for your account. If this wasn't you, ignore this email."
		action = "Reset my password"
		path = "/password/reset/"
	default:
		return "", "", fmt.Errorf("unknown mail kind: %s", kind)
	}

	link := publicURL + path + rawToken

	body = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Hello %s,</h2>
    <p>%s</p>
    <p style="margin: 24px 0;">
      <a href="%s" style="padding: 12px 20px; background: #0f172a; color: #fff; text-decoration: none; border-radius: 8px;">%s</a>
    </p>
    <p style="font-size: 12px; color: #6b7280;">This link expires shortly and can only be used once.</p>
  </div>
</body>
</html>`, name, intro, link, action)

	return subject, body, nil
}
