package service

import (
	"log"
	"github.com/kamaubrian/customerhub-backend/internal/model"
)

// NotificationStore defines the methods the worker needs
type NotificationStore interface {
	GetByID(id int) (*model.Notification, error)
	Update(n *model.Notification) error
}

// Worker processes notification jobs
type Worker struct {
	NotificationRepo NotificationStore
	JobChan          <-chan int
	SendFunc         func(msg string) bool
}

// Constructor
func NewWorker(repo NotificationStore, jobChan <-chan int, sendFunc func(msg string) bool) *Worker {
	return &Worker{
		NotificationRepo: repo,
		JobChan:          jobChan,
		SendFunc:         sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for jobID := range w.JobChan {
		n, err := w.NotificationRepo.GetByID(jobID)
		if err != nil {
			log.Println("Failed to get notification:", err)
			continue
		}

		success := w.SendFunc(n.RenderedContent)
		if success {
			n.Status = "sent"
		} else {
			n.Status = "failed"
			n.RetryCount++
		}

		w.NotificationRepo.Update(n)
	}
}
