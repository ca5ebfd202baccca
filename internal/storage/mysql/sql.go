package mysql

const upsertListingSQL = `
INSERT INTO listings
  (id, title, description, location, price, amenities, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title       = VALUES(title),
  description = VALUES(description),
  location    = VALUES(location),
  price       = VALUES(price),
  amenities   = VALUES(amenities),
  images      = VALUES(images),
  updated_at  = CURRENT_TIMESTAMP
`

const deleteListingSQL = `DELETE FROM listings WHERE id = ?`

const getListingSQL = `
SELECT id, title, description, location, price, amenities, images
FROM listings
WHERE id = ?
`

// findListingsSQL is the base of the candidate query; the repo appends
// structural predicates (location substring, price ceiling) before the
// ORDER BY. Ordering by id keeps the pre-scoring order deterministic.
const findListingsSQL = `
SELECT id, title, description, location, price, amenities, images
FROM listings
`
