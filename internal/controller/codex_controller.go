package controller

import (
	"loremaker-codex-be/internal/dto"
	"loremaker-codex-be/internal/pkg/serverutils"
	"loremaker-codex-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICodexController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	Featured(ctx *fiber.Ctx) error
	Taxonomies(ctx *fiber.Ctx) error
	Battle(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type codexController struct {
	codexService service.ICodexService
}

func NewCodexController(codexService service.ICodexService) ICodexController {
	return &codexController{
		codexService: codexService,
	}
}

func (c *codexController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/codex/v1")
	h.Get("characters", c.List)
	h.Post("characters/search", c.List)
	h.Get("characters/:slug", c.Detail)
	h.Get("featured", c.Featured)
	h.Get("taxonomies", c.Taxonomies)
	h.Post("battle", c.Battle)
	h.Post("refresh", c.Refresh)
	h.Get("health", c.Health)
}

// List serves both the GET query-string form and the POST body form.
func (c *codexController) List(ctx *fiber.Ctx) error {
	var req dto.ListCharactersRequest
	if ctx.Method() == fiber.MethodPost {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	} else {
		req.Query = ctx.Query("q", "")
		req.Mode = ctx.Query("mode", "")
		req.Sort = ctx.Query("sort", "")
		req.Page = ctx.QueryInt("page", 0)
		req.PerPage = ctx.QueryInt("per_page", 0)
		req.Filters = queryFilters(ctx)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.codexService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list characters", res))
}

// queryFilters collects repeatable facet params, e.g. ?faction=X&era=Y.
func queryFilters(ctx *fiber.Ctx) map[string][]string {
	filters := make(map[string][]string)
	for _, key := range []string{"gender", "alignment", "status", "era", "faction", "location", "tag", "power"} {
		args := ctx.Context().QueryArgs().PeekMulti(key)
		for _, v := range args {
			if len(v) > 0 {
				filters[key] = append(filters[key], string(v))
			}
		}
	}
	return filters
}

func (c *codexController) Detail(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	res, err := c.codexService.Detail(ctx.Context(), slug)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Character not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show character", res))
}

func (c *codexController) Featured(ctx *fiber.Ctx) error {
	res, err := c.codexService.Featured(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show featured", res))
}

func (c *codexController) Taxonomies(ctx *fiber.Ctx) error {
	res, err := c.codexService.Taxonomies(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list taxonomies", res))
}

func (c *codexController) Battle(ctx *fiber.Ctx) error {
	var req dto.BattleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.codexService.Battle(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Contender not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve battle", res))
}

func (c *codexController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.codexService.Refresh(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh roster", res))
}

func (c *codexController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success health check", c.codexService.Health(ctx.Context())))
}
