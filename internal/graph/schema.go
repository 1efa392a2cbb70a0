// Package graph exposes the GraphQL surface: the schema text and the typed
// resolvers that back it.
//
// DISPATCH MODEL:
// graph-gophers matches every schema field to a resolver method by name at
// schema-parse time, checking argument and result shapes against the SDL.
// A field without a matching method (or with the wrong signature) fails at
// startup, not at query time — the whole surface is verified before the
// server accepts a single request.
package graph

// Schema is the service's schema definition. Field names and types are the
// API contract; resolvers in this package implement exactly these fields.
const Schema = `
	type Photo {
		id: ID!
		name: String!
		description: String
		category: PhotoCategory!
		url: String
		postedBy: User!
	}

	type User {
		githubLogin: ID!
		name: String!
		avatar: String!
		postedPhotos: [Photo!]!
	}

	enum PhotoCategory {
		PORTRAIT
		LANDSCAPE
		ACTION
		SELFIE
	}

	input PostPhotoInput {
		name: String!
		description: String
		category: PhotoCategory = PORTRAIT
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type Query {
		totalPhotos: Int!
		allPhotos: [Photo!]!
		Photo(id: ID!): Photo!
		totalUsers: Int!
		allUsers: [User!]!
		User(githubLogin: ID!): User
	}

	type Mutation {
		postPhoto(input: PostPhotoInput!): Photo!
		githubAuth(code: String!): AuthPayload!
	}
`
