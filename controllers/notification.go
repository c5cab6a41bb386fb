package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/models"
	"servicehub/redis"
	"servicehub/utils"
	"servicehub/ws"
)

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// CreateNotification stores a notification row, drops the cached unread
// count, and pushes the event to the user's open sockets. Failures are
// logged and swallowed: a lost notification must never fail the lifecycle
// transition that produced it.
func CreateNotification(userID uint, ntype models.NotificationType, message, link string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Message: message,
		Link:    link,
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification for user %d: %v", userID, err)
		return
	}

	if redis.Client != nil {
		if err := redis.Client.Del(redis.Ctx, unreadCountKey(userID)).Err(); err != nil {
			log.Printf("Failed to invalidate unread count for user %d: %v", userID, err)
		}
	}

	ws.PushToUser(userID, ws.Event{Type: "notification", Data: notification})
}

// GetNotifications returns the current user's notifications, newest first.
// Pass ?unread_only=true to filter.
func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Where("user_id = ?", userID)
	if c.QueryBool("unread_only") {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch notifications",
			Error:   err.Error(),
		})
	}
	return c.JSON(notifications)
}

// GetUnreadCount returns the unread notification count, served from redis
// when warm. The cache is dropped on every write so it can only ever lag by
// its TTL.
func GetUnreadCount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, unreadCountKey(userID)).Int64(); err == nil {
			return c.JSON(fiber.Map{"unread_count": cached})
		}
	}

	var count int64
	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to count notifications",
			Error:   err.Error(),
		})
	}

	if redis.Client != nil {
		redis.Client.Set(redis.Ctx, unreadCountKey(userID), count, time.Minute)
	}

	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	notification.IsRead = true
	if err := db.DB.Save(&notification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update notification",
			Error:   err.Error(),
		})
	}

	if redis.Client != nil {
		redis.Client.Del(redis.Ctx, unreadCountKey(userID))
	}

	return c.JSON(notification)
}

// MarkAllNotificationsRead marks every unread notification as read
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update notifications",
			Error:   err.Error(),
		})
	}

	if redis.Client != nil {
		redis.Client.Del(redis.Ctx, unreadCountKey(userID))
	}

	return c.JSON(fiber.Map{"success": true, "message": "All notifications marked as read"})
}
