package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"SkateHubba/middleware"
	models "SkateHubba/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func productJSON(p *models.Product) gin.H {
	return gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"original_price": p.OriginalPrice,
		"image_url":      p.ImageURL,
		"category":       p.Category,
		"subcategory":    p.Subcategory,
		"brand":          p.Brand,
		"sku":            p.SKU,
		"stock":          p.Stock,
		"is_digital":     p.IsDigital,
		"metadata":       p.Metadata,
		"featured":       p.Featured,
	}
}

// @Summary Lists shop products
// @Tags shop
// @Produce json
// @Param category query string false "Category filter"
// @Param featured query boolean false "Only featured products"
// @Success 200 {array} object{name=string,price=integer}
// @Router /products [get]
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("active = true").Order("created_at desc").Limit(100)
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if c.Query("featured") == "true" {
			query = query.Where("featured = true")
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products"})
			return
		}

		list := make([]gin.H, len(products))
		for i := range products {
			list[i] = productJSON(&products[i])
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary Gets one product
// @Tags shop
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} object{name=string}
// @Failure 404 {object} object{error=string}
// @Router /products/{id} [get]
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Where("id = ? AND active = true", c.Param("id")).
			First(&product).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, productJSON(&product))
	}
}

type orderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type createOrderRequest struct {
	Items                 []orderItemRequest `json:"items"`
	StripePaymentIntentID string             `json:"stripe_payment_intent_id"`
	Notes                 string             `json:"notes"`
}

// @Summary Creates an order from a cart
// @Description Validates stock, snapshots prices, decrements stock and drops the purchased items into the buyer's closet. Payment capture is external.
// @Tags shop
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 201 {object} object{order_number=string,total=integer}
// @Failure 400 {object} object{error=string}
// @Router /auth/orders [post]
// @Security ApiKeyAuth
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order needs at least one item"})
			return
		}
		for _, item := range req.Items {
			if item.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Item quantity must be positive"})
				return
			}
		}

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			subtotal := 0
			orderItems := make([]*models.OrderItem, 0, len(req.Items))
			inventory := make([]*models.InventoryItem, 0, len(req.Items))

			for _, item := range req.Items {
				var product models.Product
				if err := tx.Where("id = ? AND active = true", item.ProductID).
					First(&product).Error; err != nil {
					return fmt.Errorf("product %d not found", item.ProductID)
				}
				if !product.IsDigital && product.Stock < item.Quantity {
					return fmt.Errorf("product %q is out of stock", product.Name)
				}
				if !product.IsDigital {
					if err := tx.Model(&models.Product{}).
						Where("id = ? AND stock >= ?", product.ID, item.Quantity).
						Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
						return err
					}
				}
				subtotal += product.Price * item.Quantity
				orderItems = append(orderItems, &models.OrderItem{
					ProductID:       product.ID,
					Quantity:        item.Quantity,
					PriceAtPurchase: product.Price,
				})
				inventory = append(inventory, &models.InventoryItem{
					UserID:       userID,
					ProductID:    &product.ID,
					ItemType:     "product",
					ItemName:     product.Name,
					ItemImageURL: product.ImageURL,
					EarnedFrom:   "purchase",
				})
			}

			order = models.Order{
				OrderNumber:           "SH-" + strings.ToUpper(uuid.NewString()[:8]),
				UserID:                userID,
				Email:                 user.Email,
				Status:                "pending",
				Subtotal:              subtotal,
				Total:                 subtotal,
				StripePaymentIntentID: req.StripePaymentIntentID,
				Notes:                 req.Notes,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for _, item := range orderItems {
				item.OrderID = order.ID
				if err := tx.Create(item).Error; err != nil {
					return err
				}
			}
			for _, item := range inventory {
				if err := tx.Create(item).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"subtotal":     order.Subtotal,
			"total":        order.Total,
		})
	}
}

// @Summary Lists the caller's orders
// @Tags shop
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{order_number=string}
// @Router /auth/orders [get]
// @Security ApiKeyAuth
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).
			Order("created_at desc").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching orders"})
			return
		}

		list := make([]gin.H, len(orders))
		for i, order := range orders {
			items := make([]gin.H, len(order.Items))
			for j, item := range order.Items {
				items[j] = gin.H{
					"product_id":        item.ProductID,
					"quantity":          item.Quantity,
					"price_at_purchase": item.PriceAtPurchase,
				}
			}
			list[i] = gin.H{
				"order_number": order.OrderNumber,
				"status":       order.Status,
				"subtotal":     order.Subtotal,
				"total":        order.Total,
				"created_at":   order.CreatedAt,
				"items":        items,
			}
		}
		c.JSON(http.StatusOK, list)
	}
}
