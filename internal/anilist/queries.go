// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package anilist

// mediaFields is the selection shared by every full-media query.
const mediaFields = `
      id
      title {
        romaji
        english
        native
      }
      coverImage {
        large
        medium
      }
      siteUrl
      description
      averageScore
      episodes
      seasonYear
      genres
      tags {
        name
        rank
      }`

// recommendationFields selects the top native recommendations of a media.
const recommendationFields = `
      recommendations(sort: RATING_DESC, perPage: 10) {
        nodes {
          mediaRecommendation {` + mediaFields + `
          }
        }
      }`

const getByIDQuery = `
  query GetAnimeById($id: Int!) {
    Media(id: $id, type: ANIME) {` + mediaFields + recommendationFields + `
    }
  }`

const searchByTitleQuery = `
  query SearchAnimeByTitle($search: String!) {
    Media(search: $search, type: ANIME) {` + mediaFields + recommendationFields + `
    }
  }`

const searchByMoodQuery = `
  query SearchAnimeByMood($genres: [String], $tags: [String], $page: Int, $perPage: Int) {
    Page(page: $page, perPage: $perPage) {
      media(type: ANIME, genre_in: $genres, tag_in: $tags, sort: [POPULARITY_DESC, SCORE_DESC], isAdult: false) {` + mediaFields + `
      }
    }
  }`

const autocompleteQuery = `
  query AutocompleteAnime($search: String!, $perPage: Int) {
    Page(page: 1, perPage: $perPage) {
      media(search: $search, type: ANIME, sort: [POPULARITY_DESC]) {
        id
        title {
          romaji
          english
          native
        }
      }
    }
  }`
