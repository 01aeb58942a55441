package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	billRepo "stayledger/database/repository/bill"
	roomRepo "stayledger/database/repository/room"
	userRepo "stayledger/database/repository/user"
	"stayledger/models"
	"stayledger/services/billing"
	"stayledger/services/tasks"
	"stayledger/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dispatcher starts a scheduled trigger out of band.
type Dispatcher interface {
	Dispatch(ctx context.Context, taskType string, date *time.Time) (string, error)
}

// Resender delivers a single generated bill again.
type Resender interface {
	Resend(ctx context.Context, billID string) error
}

// triggerTasks maps the public trigger names onto task types.
var triggerTasks = map[string]string{
	billing.TriggerRecurring:   tasks.TypeRecurringBill,
	billing.TriggerCheckout:    tasks.TypeCheckoutBill,
	billing.TriggerRoomRelease: tasks.TypeRoomRelease,
	"monthly-delivery":         tasks.TypeMonthlyDelivery,
	"checkout-delivery":        tasks.TypeCheckoutDelivery,
}

// AdminHandler encapsulates the property manager's operations.
type AdminHandler struct {
	Billing      billing.BillingService
	Delivery     Resender
	Triggers     Dispatcher
	Rooms        roomRepo.RoomRepository
	UtilityBills billRepo.UtilityBillRepository
	Users        userRepo.UserRepository
}

// ListBillsHandler lists generated bills, optionally filtered by ?month=YYYY-MM.
func (ah *AdminHandler) ListBillsHandler(c *gin.Context) {
	month := c.Query("month")
	if month != "" {
		if _, err := billing.ParseMonthKey(month); err != nil {
			badRequest(c, err)
			return
		}
	}
	bills, err := ah.Billing.ListBills(c.Request.Context(), month)
	if err != nil {
		respondError(c, "Failed to fetch bills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (ah *AdminHandler) GetBillHandler(c *gin.Context) {
	bill, err := ah.Billing.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch bill", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (ah *AdminHandler) ListTenantBillsHandler(c *gin.Context) {
	bills, err := ah.Billing.ListTenantBills(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondError(c, "Failed to fetch tenant bills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// ResendBillHandler renders and mails one bill again regardless of its delivery status.
func (ah *AdminHandler) ResendBillHandler(c *gin.Context) {
	if err := ah.Delivery.Resend(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to resend bill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bill sent"})
}

// RunTriggerHandler dispatches a trigger by name. The body may pin {"date":"YYYY-MM-DD"}.
func (ah *AdminHandler) RunTriggerHandler(c *gin.Context) {
	name := c.Param("name")
	taskType, ok := triggerTasks[name]
	if !ok {
		respondError(c, "Unknown trigger", fmt.Errorf("%w: %s", billing.ErrUnknownTrigger, name))
		return
	}

	var input struct {
		Date string `json:"date"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
	}

	var date *time.Time
	if input.Date != "" {
		d, err := utils.ParseDate(input.Date)
		if err != nil {
			badRequest(c, err)
			return
		}
		date = &d
	}

	taskID, err := ah.Triggers.Dispatch(c.Request.Context(), taskType, date)
	if err != nil {
		respondError(c, "Failed to dispatch trigger", err)
		return
	}
	getLogger(c).Info("trigger dispatched", zap.String("trigger", name), zap.String("taskId", taskID))
	c.JSON(http.StatusAccepted, gin.H{"trigger": name, "taskId": taskID})
}

func (ah *AdminHandler) CreateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		badRequest(c, err)
		return
	}
	if room.Rent.IsNegative() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "rent must not be negative")
		return
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if err := ah.Rooms.Create(c.Request.Context(), &room); err != nil {
		respondError(c, "Failed to create room", err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ah *AdminHandler) CreateUtilityBillHandler(c *gin.Context) {
	var bill models.UtilityBill
	if err := c.ShouldBindJSON(&bill); err != nil {
		badRequest(c, err)
		return
	}
	if bill.ElectricityUnits.IsNegative() || bill.UnitPrice.IsNegative() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "electricity figures must not be negative")
		return
	}
	if bill.Month != "" {
		if _, err := billing.ParseMonthKey(bill.Month); err != nil {
			badRequest(c, err)
			return
		}
	}
	if _, err := ah.Rooms.GetByNumber(c.Request.Context(), bill.RoomNumber); err != nil {
		respondError(c, "Failed to create utility bill", err)
		return
	}
	if err := ah.UtilityBills.Create(c.Request.Context(), &bill); err != nil {
		respondError(c, "Failed to create utility bill", err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (ah *AdminHandler) CreateTenantHandler(c *gin.Context) {
	var tenant models.User
	if err := c.ShouldBindJSON(&tenant); err != nil {
		badRequest(c, err)
		return
	}
	if err := ah.Users.Create(c.Request.Context(), &tenant); err != nil {
		respondError(c, "Failed to create tenant", err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}
