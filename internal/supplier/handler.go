package supplier

import (
	"sort"
	"strings"
	"time"

	"cantina-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type ProductOfferRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Biological      bool   `json:"biological"`
	ProductionStart string `json:"production_start"`
	ProductionEnd   string `json:"production_end"`
	Capacity        int    `json:"capacity"`
}

type RegisterSupplierRequest struct {
	Name             string                `json:"name"`
	RegistrationDate string                `json:"registration_date"`
	Products         []ProductOfferRequest `json:"products"`
}

type ApproveSupplierRequest struct {
	Approved bool `json:"approved"`
}

type ProductOfferResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Biological      bool   `json:"biological"`
	ProductionStart string `json:"production_start"`
	ProductionEnd   string `json:"production_end"`
	Capacity        int    `json:"capacity"`
}

type SupplierResponse struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	RegistrationDate string                 `json:"registration_date"`
	Approved         bool                   `json:"approved"`
	Products         []ProductOfferResponse `json:"products"`
}

func parseDate(value, field string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" must be a YYYY-MM-DD date")
	}
	return d, nil
}

func buildOffer(req ProductOfferRequest) (models.SupplierProduct, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.SupplierProduct{}, fiber.NewError(fiber.StatusBadRequest, "Product name must not be empty")
	}
	start, err := parseDate(req.ProductionStart, "production_start")
	if err != nil {
		return models.SupplierProduct{}, err
	}
	end, err := parseDate(req.ProductionEnd, "production_end")
	if err != nil {
		return models.SupplierProduct{}, err
	}
	if end.Before(start) {
		return models.SupplierProduct{}, fiber.NewError(fiber.StatusBadRequest, "production_end must not be before production_start")
	}
	if req.Capacity < 0 {
		return models.SupplierProduct{}, fiber.NewError(fiber.StatusBadRequest, "Capacity must not be negative")
	}

	return models.SupplierProduct{
		Name:            name,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		Biological:      req.Biological,
		ProductionStart: start,
		ProductionEnd:   end,
		Capacity:        req.Capacity,
	}, nil
}

// -------------------------
// Supplier CRUD
// -------------------------

// POST /api/suppliers
func RegisterSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Supplier name must not be empty")
		}

		registrationDate := time.Now()
		if body.RegistrationDate != "" {
			d, err := parseDate(body.RegistrationDate, "registration_date")
			if err != nil {
				return err
			}
			registrationDate = d
		}

		supplier := models.Supplier{
			Name:             strings.TrimSpace(body.Name),
			RegistrationDate: registrationDate,
			Approved:         false,
		}
		for _, p := range body.Products {
			offer, err := buildOffer(p)
			if err != nil {
				return err
			}
			supplier.Products = append(supplier.Products, offer)
		}

		if err := db.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not register supplier")
		}

		return c.Status(fiber.StatusCreated).JSON(supplierResponse(supplier))
	}
}

// GET /api/suppliers?approved=true
func ListSuppliersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Preload("Products").Order("registration_date asc, id asc")
		if c.Query("approved") == "true" {
			q = q.Where("approved = ?", true)
		}

		var suppliers []models.Supplier
		if err := q.Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list suppliers")
		}

		resp := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			resp = append(resp, supplierResponse(s))
		}
		return c.JSON(resp)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := db.Preload("Products").First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}
		return c.JSON(supplierResponse(supplier))
	}
}

// PUT /api/suppliers/:id/approval
func ApproveSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := db.Preload("Products").First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var body ApproveSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		supplier.Approved = body.Approved
		if err := db.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update supplier approval")
		}

		return c.JSON(supplierResponse(supplier))
	}
}

// POST /api/suppliers/:id/products
func AddProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var body ProductOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		offer, err := buildOffer(body)
		if err != nil {
			return err
		}
		offer.SupplierID = supplier.ID

		if err := db.Create(&offer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add product offer")
		}

		return c.Status(fiber.StatusCreated).JSON(offerResponse(offer))
	}
}

// GET /api/suppliers/supply-order
// Advisory view: for every offered product, the approved suppliers in
// priority order (oldest registration first, rank 1 = highest).
func SupplyOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var approved []models.Supplier
		if err := db.Preload("Products").Where("approved = ?", true).Find(&approved).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list suppliers")
		}

		ordering := ProductOrdering(approved)

		products := make([]string, 0, len(ordering))
		for name := range ordering {
			products = append(products, name)
		}
		sort.Strings(products)

		type rankedSupplier struct {
			SupplierID       uint   `json:"supplier_id"`
			Name             string `json:"name"`
			RegistrationDate string `json:"registration_date"`
			Rank             int    `json:"rank"`
		}
		type productOrder struct {
			Product   string           `json:"product"`
			Suppliers []rankedSupplier `json:"suppliers"`
		}

		resp := make([]productOrder, 0, len(products))
		for _, name := range products {
			entry := productOrder{Product: name}
			for i, s := range ordering[name] {
				entry.Suppliers = append(entry.Suppliers, rankedSupplier{
					SupplierID:       s.ID,
					Name:             s.Name,
					RegistrationDate: s.RegistrationDate.Format("2006-01-02"),
					Rank:             i + 1,
				})
			}
			resp = append(resp, entry)
		}

		return c.JSON(resp)
	}
}

func supplierResponse(s models.Supplier) SupplierResponse {
	resp := SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		RegistrationDate: s.RegistrationDate.Format("2006-01-02"),
		Approved:         s.Approved,
		Products:         make([]ProductOfferResponse, 0, len(s.Products)),
	}
	for _, p := range s.Products {
		resp.Products = append(resp.Products, offerResponse(p))
	}
	return resp
}

func offerResponse(p models.SupplierProduct) ProductOfferResponse {
	return ProductOfferResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Biological:      p.Biological,
		ProductionStart: p.ProductionStart.Format("2006-01-02"),
		ProductionEnd:   p.ProductionEnd.Format("2006-01-02"),
		Capacity:        p.Capacity,
	}
}
