package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"hosteria/internal/entities"
)

// SenderService sends booking and account mails plus SMS. Every send is best
// effort: failures are logged, never surfaced to the request that caused them.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// NotifyReservationCreated mails and texts the guest their booking summary.
func (s *SenderService) NotifyReservationCreated(detail *entities.ReservationDetail, email, phone string) {
	subject := fmt.Sprintf("Tu reserva #%d está registrada", detail.IDReserva)
	body := fmt.Sprintf(
		"Hola,\n\nTu reserva en la hostería quedó registrada.\n\n"+
			"Detalles:\n"+
			"Habitación: %d\n"+
			"Ingreso: %s\n"+
			"Egreso: %s\n"+
			"Seña: $%.2f\n"+
			"Total: $%.2f\n\n"+
			"Te esperamos.",
		detail.Habitacion.Numero, detail.FechaDesde, detail.FechaHasta,
		detail.MontoPagado, detail.MontoTotal,
	)

	if email != "" {
		go func() {
			if err := sendEmailWithSendGrid(email, subject, body); err != nil {
				log.Printf("ALERTA: falló el envío del correo de la reserva %d: %v", detail.IDReserva, err)
			}
		}()
	}
	if phone != "" {
		go func() {
			sms := fmt.Sprintf("Hostería: tu reserva #%d está registrada. Ingreso: %s. Más detalles en tu correo.",
				detail.IDReserva, detail.FechaDesde)
			if err := sendSMS(phone, sms); err != nil {
				log.Printf("ALERTA: la reserva %d se creó, pero falló el SMS a %s: %v", detail.IDReserva, phone, err)
			}
		}()
	}
}

// SendVerificationEmail mails the account activation link.
func (s *SenderService) SendVerificationEmail(toEmail, toName, token string) {
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	subject := "Verificá tu cuenta"
	body := fmt.Sprintf(
		"Hola %s,\n\nPara activar tu cuenta ingresá al siguiente enlace:\n\n"+
			"%s/api/auth/verify?token=%s\n\n"+
			"El enlace vence en 48 horas.",
		toName, baseURL, token,
	)
	go func() {
		if err := sendEmailWithSendGrid(toEmail, subject, body); err != nil {
			log.Printf("ALERTA: falló el envío del correo de verificación a %s: %v", toEmail, err)
		}
	}()
}

func sendEmailWithSendGrid(toEmail, subject, plainTextContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY no está configurada")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL no está configurada")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Hostería"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("falló el envío del correo a través de SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("credenciales de Twilio no configuradas completamente")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("ADVERTENCIA: el número de destino %q no está en formato E.164, el SMS podría fallar", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("falló el envío del SMS: %w", err)
	}
	return nil
}
