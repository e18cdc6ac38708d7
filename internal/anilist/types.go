// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package anilist

import (
	"strings"

	"github.com/tomtom215/aniscout/internal/anime"
)

// graphqlRequest is the POST body of a GraphQL call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is one entry of the GraphQL errors array.
type graphqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// graphqlResponse wraps the data payload of type T.
type graphqlResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// errorMessage joins the GraphQL error messages.
func errorMessage(errs []graphqlError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// notFound reports whether every GraphQL error is a 404.
func notFound(errs []graphqlError) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if e.Status != 404 {
			return false
		}
	}
	return true
}

// Wire types. Nullable scalars decode to their zero value.

type mediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type mediaCover struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

type mediaTag struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type mediaNode struct {
	ID           int        `json:"id"`
	Title        mediaTitle `json:"title"`
	CoverImage   mediaCover `json:"coverImage"`
	SiteURL      string     `json:"siteUrl"`
	Description  string     `json:"description"`
	AverageScore int        `json:"averageScore"`
	Episodes     int        `json:"episodes"`
	SeasonYear   int        `json:"seasonYear"`
	Genres       []string   `json:"genres"`
	Tags         []mediaTag `json:"tags"`

	Recommendations *struct {
		Nodes []struct {
			MediaRecommendation *mediaNode `json:"mediaRecommendation"`
		} `json:"nodes"`
	} `json:"recommendations"`
}

type singleMediaData struct {
	Media *mediaNode `json:"Media"`
}

type pageData struct {
	Page struct {
		Media []mediaNode `json:"media"`
	} `json:"Page"`
}

// toMedia converts a wire node into the domain model. Recommendation nodes
// whose mediaRecommendation is null are skipped, and nested recommendations
// are never carried.
func (n *mediaNode) toMedia() anime.Media {
	m := anime.Media{
		ID: n.ID,
		Title: anime.Title{
			Romaji:  n.Title.Romaji,
			English: n.Title.English,
			Native:  n.Title.Native,
		},
		CoverImage: anime.CoverImage{
			Large:  n.CoverImage.Large,
			Medium: n.CoverImage.Medium,
		},
		SiteURL:      n.SiteURL,
		Description:  n.Description,
		AverageScore: n.AverageScore,
		Episodes:     n.Episodes,
		SeasonYear:   n.SeasonYear,
		Genres:       n.Genres,
		Tags:         make([]anime.Tag, len(n.Tags)),
	}
	if m.Genres == nil {
		m.Genres = []string{}
	}
	for i, t := range n.Tags {
		m.Tags[i] = anime.Tag{Name: t.Name, Rank: t.Rank}
	}

	if n.Recommendations != nil {
		for _, node := range n.Recommendations.Nodes {
			if node.MediaRecommendation == nil {
				continue
			}
			rec := *node.MediaRecommendation
			rec.Recommendations = nil
			m.Recommendations = append(m.Recommendations, rec.toMedia())
		}
	}
	return m
}
