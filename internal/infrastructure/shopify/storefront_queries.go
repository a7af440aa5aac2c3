package shopify

// Shared fragments keep the cart and product shapes identical across
// queries and mutations so snapshot replacement always sees full objects.

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost { totalAmount { amount currencyCode } }
        merchandise {
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            product { title handle }
            image { url }
          }
        }
      }
    }
  }
}
`

const productFragment = `
fragment ProductFields on Product {
  id
  handle
  title
  descriptionHtml
  vendor
  productType
  tags
  images(first: 10) { edges { node { url } } }
  variants(first: 50) {
    edges {
      node {
        id
        title
        availableForSale
        price { amount currencyCode }
      }
    }
  }
}
`

const cartCreateMutation = cartFragment + `
mutation cartCreate {
  cartCreate {
    cart { ...CartFields }
    userErrors { field message }
  }
}
`

const cartQuery = cartFragment + `
query getCart($cartId: ID!) {
  cart(id: $cartId) { ...CartFields }
}
`

const cartLinesAddMutation = cartFragment + `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    userErrors { field message }
  }
}
`

const cartLinesRemoveMutation = cartFragment + `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    userErrors { field message }
  }
}
`

const cartLinesUpdateMutation = cartFragment + `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    userErrors { field message }
  }
}
`

const productsQuery = productFragment + `
query getProducts($first: Int!) {
  products(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges { node { ...ProductFields } }
  }
}
`

const collectionProductsQuery = productFragment + `
query getCollectionProducts($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    products(first: $first) {
      edges { node { ...ProductFields } }
    }
  }
}
`

const productByHandleQuery = productFragment + `
query getProduct($handle: String!) {
  product(handle: $handle) { ...ProductFields }
}
`
