package mailer

import (
	"sync"

	"github.com/resend/resend-go/v3"

	"github.com/daneswara/kafe-pos/config"
	"github.com/daneswara/kafe-pos/utils"
)

// Job adalah satu email yang akan dikirim worker di background.
type Job struct {
	To      string
	Subject string
	HTML    string
}

// Queue mengantrekan email transaksional agar response HTTP tidak menunggu
// pengiriman. Job dikirim setelah transaksi utama commit; kegagalan kirim
// hanya dicatat di log, tidak membatalkan request pemicunya.
type Queue struct {
	jobs   chan Job
	client *resend.Client
	from   string
	wg     sync.WaitGroup
	once   sync.Once
}

func NewQueue(buffer int) *Queue {
	cfg := config.Get()

	q := &Queue{
		jobs: make(chan Job, buffer),
		from: cfg.MailFrom,
	}
	if cfg.MailAPIKey != "" {
		q.client = resend.NewClient(cfg.MailAPIKey)
	}
	return q
}

// Start menjalankan worker pengirim email.
func (q *Queue) Start(workers int) {
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range q.jobs {
				q.send(job)
			}
		}()
	}
}

// Stop menutup antrean dan menunggu job tersisa selesai dikirim.
func (q *Queue) Stop() {
	q.once.Do(func() {
		close(q.jobs)
	})
	q.wg.Wait()
}

// Enqueue memasukkan job tanpa memblokir request; antrean penuh dicatat
// sebagai job yang di-drop.
func (q *Queue) Enqueue(job Job) {
	select {
	case q.jobs <- job:
	default:
		utils.ErrorLogger.Printf("Antrean email penuh, job ke %s di-drop", job.To)
	}
}

func (q *Queue) send(job Job) {
	if q.client == nil {
		utils.InfoLogger.Printf("MAIL_API_KEY kosong, email ke %s dilewati (%s)", job.To, job.Subject)
		return
	}

	params := &resend.SendEmailRequest{
		From:    q.from,
		To:      []string{job.To},
		Subject: job.Subject,
		Html:    job.HTML,
	}

	if _, err := q.client.Emails.Send(params); err != nil {
		utils.ErrorLogger.Printf("Gagal mengirim email ke %s: %v", job.To, err)
		return
	}
	utils.InfoLogger.Printf("Email terkirim ke %s (%s)", job.To, job.Subject)
}
