package services

import (
	"fmt"
	"log"
	"time"

	"portfolio-review-api/config"
	"portfolio-review-api/models"

	"gorm.io/gorm"
)

// NotificationService creates in-app notifications and fans out the matching
// emails. Email failures are logged, never surfaced: a broken SMTP relay must
// not fail the request that triggered the notification.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify stores one notification row for the user.
func (s *NotificationService) Notify(userID int, title, message, notifType string, portfolioID *int) error {
	n := models.Notification{
		UserID:   uint(userID),
		Title:    title,
		Message:  message,
		Type:     notifType,
		IsRead:   false,
		CreateAt: time.Now(),
	}
	if portfolioID != nil {
		pid := uint(*portfolioID)
		n.RelatedPortfolioID = &pid
	}
	return s.db.Create(&n).Error
}

// NotifyWithEmail stores the notification and sends the email in the
// background.
func (s *NotificationService) NotifyWithEmail(user models.User, title, message, notifType string, portfolioID *int) error {
	if err := s.Notify(user.UserID, title, message, notifType, portfolioID); err != nil {
		return err
	}
	sendMailSafe([]string{user.Email}, title, buildEmailHTML(title, user.FullName(), message))
	return nil
}

// MarkRead marks one of the user's notifications read. Marking an already
// read notification is a no-op, not an error.
func (s *NotificationService) MarkRead(userID int, notificationID int) error {
	return s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// MarkAllRead marks every unread notification for the user. Idempotent:
// running it with nothing unread changes nothing and still succeeds.
func (s *NotificationService) MarkAllRead(userID int) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(userID int) (int64, error) {
	var n int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID int, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var items []models.Notification
	err := q.Order("create_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func sendMailSafe(to []string, subject, html string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("sendMailSafe panic: %v", r)
			}
		}()
		if err := config.SendMail(to, subject, html); err != nil {
			log.Printf("sendMailSafe: failed to send %q to %v: %v", subject, to, err)
		}
	}()
}

func buildEmailHTML(subject, recipientName, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h3>%s</h3>
  <p>Dear %s,</p>
  <p>%s</p>
  <p style="color:#888; font-size:12px;">This is an automated message from the portfolio review system. Please do not reply.</p>
</body>
</html>`, subject, recipientName, message)
}
