// Package mailer envía los avisos de correo del negocio (aceptación de
// cotización con su recordatorio de anticipo). Todos los envíos son de mejor
// esfuerzo: un SMTP caído nunca tumba la operación que los dispara.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/brightstage/rentalops-api/internal/application/quote"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/pkg/config"
	"github.com/brightstage/rentalops-api/pkg/logger"
)

var _ quote.Notifier = (*Mailer)(nil)

// Mailer notificador SMTP. Con Host vacío queda deshabilitado y solo registra
// en el log lo que habría enviado.
type Mailer struct {
	cfg config.SMTPConfig
	to  string // buzón comercial interno
	log *logger.Logger
}

// NewMailer construye el notificador.
func NewMailer(cfg config.SMTPConfig, commercialInbox string, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, to: commercialInbox, log: log}
}

// QuoteAccepted avisa al equipo comercial que el cliente aceptó la cotización
// y que la factura de anticipo quedó emitida.
func (m *Mailer) QuoteAccepted(p *entity.Project, invoice *entity.Invoice) {
	subject := fmt.Sprintf("Cotización aceptada: %s", p.EventName)
	body := fmt.Sprintf(
		"El cliente %s aceptó la cotización del evento %q (%s al %s).\n\n"+
			"Factura de anticipo %s por %s DT, vence el %s.\n",
		p.ClientName, p.EventName,
		p.Dates.Start.Format("02/01/2006"), p.Dates.End.Format("02/01/2006"),
		invoice.Number, invoice.TotalInclTax.StringFixed(3),
		invoice.DueDate.Format("02/01/2006"),
	)
	m.send(subject, body)
}

func (m *Mailer) send(subject, body string) {
	if m.cfg.Host == "" || m.to == "" {
		m.log.Info().Str("subject", subject).Msg("mailer deshabilitado; correo no enviado")
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		m.log.Error().Err(err).Str("subject", subject).Msg("error enviando correo")
	}
}
