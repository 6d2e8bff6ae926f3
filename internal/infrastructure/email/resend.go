package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.resend.com/emails"

// ResendSender sends emails through the Resend REST API
type ResendSender struct {
	apiKey     string
	fromEmail  string
	apiURL     string
	httpClient *http.Client
}

// NewResendSender creates a new Resend email sender
func NewResendSender(apiKey, fromEmail string) *ResendSender {
	return &ResendSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		apiURL:    defaultAPIURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetAPIURL overrides the API endpoint (used for testing)
func (s *ResendSender) SetAPIURL(url string) {
	s.apiURL = url
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *ResendSender) send(ctx context.Context, to, subject, html string) error {
	if s.apiKey == "" {
		return fmt.Errorf("resend api key not configured")
	}

	body, err := json.Marshal(resendRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend api returned status %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

// SendVerificationEmail sends the account activation link
func (s *ResendSender) SendVerificationEmail(ctx context.Context, to, verificationLink string) error {
	html := renderTemplate("Verifique seu email",
		"Clique no botão abaixo para verificar seu email e ativar sua conta Anonimax.",
		fmt.Sprintf(`<a href="%s" class="button">Verificar Email</a>
                <p style="color: #64748b; font-size: 14px;">Se você não criou uma conta no Anonimax, ignore este email.</p>`, verificationLink))
	return s.send(ctx, to, "Verifique seu email - Anonimax", html)
}

// SendWelcomeEmail confirms verification and repeats the Anonimax ID
func (s *ResendSender) SendWelcomeEmail(ctx context.Context, to, anonimaxID string) error {
	html := renderTemplate("Bem-vindo ao Anonimax!",
		"Seu email foi verificado com sucesso. Este é o seu identificador na plataforma:",
		fmt.Sprintf(`<div class="credentials">
                    <div class="credential-item">
                        <div class="credential-label">Seu Anonimax ID</div>
                        <div class="credential-value">%s</div>
                    </div>
                </div>
                <p>Use seu Anonimax ID em seus anúncios e no diretório.</p>`, anonimaxID))
	return s.send(ctx, to, "Bem-vindo ao Anonimax", html)
}

// SendPasswordResetEmail sends the password reset link
func (s *ResendSender) SendPasswordResetEmail(ctx context.Context, to, resetLink string) error {
	html := renderTemplate("Recuperação de Senha",
		"Você solicitou a redefinição de sua senha. Clique no botão abaixo para escolher uma nova senha. O link expira em uma hora.",
		fmt.Sprintf(`<a href="%s" class="button">Redefinir Senha</a>
                <p style="color: #64748b; font-size: 14px;">Se você não solicitou esta recuperação, ignore este email.</p>`, resetLink))
	return s.send(ctx, to, "Recuperação de senha - Anonimax", html)
}

func renderTemplate(title, intro, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #0f172a; color: #e2e8f0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: #1e293b; border-radius: 12px; padding: 40px; }
        .logo { text-align: center; margin-bottom: 30px; }
        .logo h1 { color: #22d3ee; margin: 0; }
        .content { text-align: center; }
        .button { display: inline-block; background: linear-gradient(to right, #22d3ee, #a855f7); color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin: 20px 0; }
        .credentials { background-color: #0f172a; border-radius: 8px; padding: 20px; margin: 20px 0; }
        .credential-item { margin: 15px 0; }
        .credential-label { color: #64748b; font-size: 12px; text-transform: uppercase; }
        .credential-value { color: #22d3ee; font-size: 24px; font-weight: bold; font-family: monospace; }
        .footer { text-align: center; margin-top: 30px; color: #64748b; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">
            <h1>Anonimax</h1>
        </div>
        <div class="content">
            <h2>%s</h2>
            <p>%s</p>
            %s
        </div>
        <div class="footer">
            <p>Anonimax - Sua identidade, seu controle</p>
        </div>
    </div>
</body>
</html>`, title, intro, body)
}
