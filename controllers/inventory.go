package controllers

import (
	"net/http"

	"SkateHubba/middleware"
	models "SkateHubba/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Lists the caller's closet
// @Tags inventory
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{item_name=string,equipped=boolean}
// @Router /auth/inventory [get]
// @Security ApiKeyAuth
func ListInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var items []models.InventoryItem
		if err := db.Where("user_id = ?", userID).
			Order("acquired_at desc").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching inventory"})
			return
		}

		list := make([]gin.H, len(items))
		for i, item := range items {
			list[i] = gin.H{
				"id":             item.ID,
				"product_id":     item.ProductID,
				"item_type":      item.ItemType,
				"item_name":      item.ItemName,
				"item_image_url": item.ItemImageURL,
				"rarity":         item.Rarity,
				"equipped":       item.Equipped,
				"equipped_slot":  item.EquippedSlot,
				"earned_from":    item.EarnedFrom,
				"acquired_at":    item.AcquiredAt,
			}
		}
		c.JSON(http.StatusOK, list)
	}
}

type equipRequest struct {
	Slot string `json:"slot"`
}

// @Summary Equips a closet item into a slot
// @Description Any other item in the same slot is unequipped in the same transaction
// @Tags inventory
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Inventory item id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/inventory/{id}/equip [post]
// @Security ApiKeyAuth
func EquipItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req equipRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Slot == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slot is required"})
			return
		}

		var item models.InventoryItem
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.InventoryItem{}).
				Where("user_id = ? AND equipped_slot = ? AND equipped = true", userID, req.Slot).
				Updates(map[string]interface{}{"equipped": false, "equipped_slot": ""}).Error; err != nil {
				return err
			}
			return tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
				Updates(map[string]interface{}{"equipped": true, "equipped_slot": req.Slot}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error equipping item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item equipped successfully"})
	}
}

// @Summary Unequips a closet item
// @Tags inventory
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Inventory item id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/inventory/{id}/unequip [post]
// @Security ApiKeyAuth
func UnequipItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var item models.InventoryItem
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}

		if err := db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
			Updates(map[string]interface{}{"equipped": false, "equipped_slot": ""}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unequipping item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item unequipped successfully"})
	}
}
