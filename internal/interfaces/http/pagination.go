package http

import "github.com/gofiber/fiber/v2"

// pageLimit lee ?limit= con tope 100 y default 20.
func pageLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

// pageOffset lee ?offset= (negativo = 0).
func pageOffset(c *fiber.Ctx) int {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return offset
}
