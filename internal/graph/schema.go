package graph

import "strings"

// The schema is composed from per-entity fragments, mirroring the model
// split across the two storage connections. Entities are disjoint, so
// merging is a plain union of type definitions and root fields.

const accountTypes = `
type Account {
	id: ID!
	name: String!
	email: String!
	createdAt: String!
	updatedAt: String!
}

type AccountConnection {
	accounts: [Account!]!
	totalCount: Int!
}

input CreateAccountInput {
	name: String!
	email: String!
}
`

const accountQueryFields = `
	account(id: ID!): Account
	accounts(page: Int, perPage: Int, name: String): AccountConnection!
`

const accountMutationFields = `
	createAccount(input: CreateAccountInput!): Account!
`

const productTypes = `
type Product {
	id: ID!
	name: String!
	sku: String!
	stock: Int!
	accountId: ID!
	account: Account
	createdAt: String!
	updatedAt: String!
}

input CreateProductInput {
	name: String!
	sku: String!
	stock: Int!
	accountId: ID!
}

input PurchaseProductInput {
	accountId: ID!
	productId: ID!
	quantity: Int!
}

type PurchaseResponse {
	success: Boolean!
	message: String!
	product: Product
}
`

const productQueryFields = `
	product(id: ID!): Product
	productsByAccount(accountId: ID!): [Product!]!
`

const productMutationFields = `
	createProduct(input: CreateProductInput!): Product!
	purchaseProduct(input: PurchaseProductInput!): PurchaseResponse!
`

// Schema assembles the full executable schema string.
func Schema() string {
	var b strings.Builder
	b.WriteString("schema {\n\tquery: Query\n\tmutation: Mutation\n}\n")

	b.WriteString("\ntype Query {")
	b.WriteString(accountQueryFields)
	b.WriteString(productQueryFields)
	b.WriteString("}\n")

	b.WriteString("\ntype Mutation {")
	b.WriteString(accountMutationFields)
	b.WriteString(productMutationFields)
	b.WriteString("}\n")

	b.WriteString(accountTypes)
	b.WriteString(productTypes)
	return b.String()
}
