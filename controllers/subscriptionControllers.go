package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// Subscription plans offered on the marketing site.
var subscriptionPlans = map[string]float64{
	"basic":   29.99,
	"premium": 49.99,
}

// GetSubscriptionPlans lists the available plans.
func GetSubscriptionPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"plans":  subscriptionPlans,
	})
}

// CreateSubscription opens a pending subscription and a payment order for it.
func CreateSubscription(c *gin.Context) {
	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	amount, ok := subscriptionPlans[req.Plan]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscription plan"})
		return
	}

	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subscription := models.Subscription{
		UserID:        userID.(int),
		Plan:          req.Plan,
		Amount:        amount,
		PaymentStatus: "Pending",
	}
	if err := configuration.DB.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	// Convert to the smallest currency unit for the payment API
	amountInCents := int(amount * 100)
	razorpayClient := razorpay.NewClient(os.Getenv("RazorPay_key_id"), os.Getenv("RazorPay_key_secret"))

	data := map[string]interface{}{
		"amount":   amountInCents,
		"currency": "USD",
		"receipt":  fmt.Sprintf("sub-%d", subscription.SubscriptionID),
	}

	body, err := razorpayClient.Order.Create(data, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to create payment order"})
		return
	}

	orderID, _ := body["id"].(string)
	c.JSON(http.StatusOK, gin.H{
		"Status":          "Success",
		"subscription_id": subscription.SubscriptionID,
		"order_id":        orderID,
		"amount":          amountInCents,
	})
}

// PaymentSuccess marks a subscription paid after the processor callback.
func PaymentSuccess(c *gin.Context) {
	subscriptionID := c.Query("subscription_id")

	var subscription models.Subscription
	if err := configuration.DB.First(&subscription, subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"Error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch the subscription"})
		return
	}

	if subscription.PaymentStatus == "Paid" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription is already paid"})
		return
	}

	now := time.Now()
	subscription.PaymentStatus = "Paid"
	subscription.StartsAt = now
	subscription.ExpiresAt = now.AddDate(0, 1, 0)
	if err := configuration.DB.Save(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to update the subscription"})
		return
	}

	// Record the processor payment
	razorPayment := models.RazorPay{
		RazorPaymentID:  uuid.New().String(),
		RazorPayorderID: c.Query("order_id"),
		SubscriptionID:  subscription.SubscriptionID,
		AmountPaid:      subscription.Amount,
	}
	if err := configuration.DB.Create(&razorPayment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to create payment record"})
		return
	}

	// Send the receipt; payment stays recorded even when the email fails
	var user models.User
	if err := configuration.DB.First(&user, subscription.UserID).Error; err == nil && user.Email != "" {
		if receipt, err := GenerateSubscriptionReceipt(subscription, user, razorPayment); err == nil {
			_ = SendEmail("Your legal protection plan is active", user.Email, "receipt.pdf", receipt)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":       "Success",
		"message":      "Subscription activated",
		"subscription": subscription,
	})
}

// GenerateSubscriptionReceipt renders the payment receipt PDF.
func GenerateSubscriptionReceipt(subscription models.Subscription, user models.User, payment models.RazorPay) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(16, 42, 67)
	pdf.CellFormat(0, 10, "LegalShield - Military Legal Services", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, "www.legalshield.example.com", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Subscription Receipt", "1", 1, "C", false, 0, "")
	addReceiptDetail(pdf, "Subscription ID", fmt.Sprintf("%d", subscription.SubscriptionID), true)
	addReceiptDetail(pdf, "Member", user.Name, true)
	addReceiptDetail(pdf, "Plan", subscription.Plan, true)
	addReceiptDetail(pdf, "Active From", subscription.StartsAt.Format("2006-01-02"), true)
	addReceiptDetail(pdf, "Expires", subscription.ExpiresAt.Format("2006-01-02"), true)

	pdf.CellFormat(0, 10, "Payment Details", "1", 1, "C", false, 0, "")
	addReceiptDetail(pdf, "Payment ID", payment.RazorPaymentID, false)
	addReceiptDetail(pdf, "Order ID", payment.RazorPayorderID, false)
	pdf.SetFont("Arial", "B", 13)
	addReceiptDetail(pdf, "Amount Paid", fmt.Sprintf("%.2f", payment.AmountPaid), true)

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

// addReceiptDetail adds a detail line to the PDF
func addReceiptDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
