package gateway

const propertyFields = `
    id
    name
    nickname
    type
    address1
    address2
    city
    state
    zip
    acquiredDate
    isActive
    notes
    createdAt
    updatedAt`

const categoryFields = `
    id
    name
    isDefault
    createdAt
    updatedAt`

const entryFields = `
    id
    date
    totalMinutes
    performer
    activityType
    notes
    images
    startTime
    endTime
    propertyID
    categoryID
    createdAt
    updatedAt`

const (
	ListPropertiesQuery = `query ListProperties {
  listProperties {
    items {` + propertyFields + `
    }
  }
}`

	GetPropertyQuery = `query GetProperty($id: ID!) {
  getProperty(id: $id) {` + propertyFields + `
  }
}`

	CreatePropertyMutation = `mutation CreateProperty($input: CreatePropertyInput!) {
  createProperty(input: $input) {` + propertyFields + `
  }
}`

	UpdatePropertyMutation = `mutation UpdateProperty($input: UpdatePropertyInput!) {
  updateProperty(input: $input) {` + propertyFields + `
  }
}`

	DeletePropertyMutation = `mutation DeleteProperty($input: DeletePropertyInput!) {
  deleteProperty(input: $input) {
    id
  }
}`

	ListCategoriesQuery = `query ListCategories {
  listCategories {
    items {` + categoryFields + `
    }
  }
}`

	GetCategoryQuery = `query GetCategory($id: ID!) {
  getCategory(id: $id) {` + categoryFields + `
  }
}`

	CreateCategoryMutation = `mutation CreateCategory($input: CreateCategoryInput!) {
  createCategory(input: $input) {` + categoryFields + `
  }
}`

	UpdateCategoryMutation = `mutation UpdateCategory($input: UpdateCategoryInput!) {
  updateCategory(input: $input) {` + categoryFields + `
  }
}`

	DeleteCategoryMutation = `mutation DeleteCategory($input: DeleteCategoryInput!) {
  deleteCategory(input: $input) {
    id
  }
}`

	ListEntriesQuery = `query ListEntries {
  listEntries {
    items {` + entryFields + `
    }
  }
}`

	CreateEntryMutation = `mutation CreateEntry($input: CreateEntryInput!) {
  createEntry(input: $input) {` + entryFields + `
  }
}`

	UpdateEntryMutation = `mutation UpdateEntry($input: UpdateEntryInput!) {
  updateEntry(input: $input) {` + entryFields + `
  }
}`

	UpdateEntryImagesMutation = `mutation UpdateEntry($input: UpdateEntryInput!) {
  updateEntry(input: $input) {
    id
    images
  }
}`

	DeleteEntryMutation = `mutation DeleteEntry($input: DeleteEntryInput!) {
  deleteEntry(input: $input) {
    id
  }
}`
)
