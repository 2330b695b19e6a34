package http

import (
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// --- Request DTOs ---

type resolveReq struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Threshold    float64  `json:"threshold" binding:"omitempty,gt=0,lte=1"`
	RawMetadata  []string `json:"raw_metadata"`
	Description  string   `json:"description" binding:"max=1000"`
	Category     string   `json:"category"`
	MuscleGroups []string `json:"muscle_groups"`
	Equipment    []string `json:"equipment"`
}

func (r resolveReq) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return activity.ErrEmptyName
	}
	return nil
}

func (r resolveReq) toInput() activity.ResolveInput {
	return activity.ResolveInput{
		Name:         r.Name,
		Threshold:    r.Threshold,
		RawMetadata:  r.RawMetadata,
		Description:  r.Description,
		Category:     r.Category,
		MuscleGroups: r.MuscleGroups,
		Equipment:    r.Equipment,
	}
}

type searchReq struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

func (r searchReq) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return activity.ErrEmptyQuery
	}
	return nil
}

func (r searchReq) toInput() activity.SearchInput {
	return activity.SearchInput{Query: r.Query, Limit: r.Limit}
}

// --- Response DTOs ---

type activityResp struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	MuscleGroups []string `json:"muscle_groups,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
}

func newActivityResp(a model.Activity) activityResp {
	return activityResp{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Description:  a.Description,
		Category:     a.Category,
		MuscleGroups: a.MuscleGroups,
		Equipment:    a.Equipment,
	}
}

type resolveResp struct {
	Matched                bool         `json:"matched"`
	Created                bool         `json:"created"`
	Score                  *float64     `json:"score,omitempty"`
	SearchServiceAvailable bool         `json:"search_service_available"`
	Activity               activityResp `json:"activity"`
}

func (h *handler) newResolveResp(out activity.ResolveOutput) resolveResp {
	return resolveResp{
		Matched:                out.Matched,
		Created:                out.Created,
		Score:                  out.Score,
		SearchServiceAvailable: out.SearchServiceAvailable,
		Activity:               newActivityResp(out.Activity),
	}
}

type searchResultResp struct {
	Activity activityResp `json:"activity"`
	Score    *float64     `json:"score,omitempty"`
}

type searchResp struct {
	Query                  string             `json:"query"`
	SearchServiceAvailable bool               `json:"search_service_available"`
	Results                []searchResultResp `json:"results"`
}

func (h *handler) newSearchResp(out activity.SearchOutput) searchResp {
	results := make([]searchResultResp, len(out.Results))
	for i, r := range out.Results {
		results[i] = searchResultResp{Activity: newActivityResp(r.Activity), Score: r.Score}
	}
	return searchResp{
		Query:                  out.Query,
		SearchServiceAvailable: out.SearchServiceAvailable,
		Results:                results,
	}
}

type searchStatusResp struct {
	Available     bool `json:"available"`
	DocumentCount int  `json:"document_count"`
	CatalogCount  int  `json:"catalog_count"`
}

func (h *handler) newSearchStatusResp(out activity.SearchStatusOutput) searchStatusResp {
	return searchStatusResp{
		Available:     out.Available,
		DocumentCount: out.DocumentCount,
		CatalogCount:  out.CatalogCount,
	}
}

type seedResp struct {
	Indexed int `json:"indexed"`
}
