package transport

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"omitempty"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Stock       *int     `json:"stock"       validate:"required,gte=1"`
}

type AddToCartRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity"  validate:"required,gte=1"`
}

type RemoveFromCartRequest struct {
	CartItemID uint `json:"cartItemId" validate:"required"`
}

type CartLineView struct {
	CartItemID uint    `json:"cart_item_id"`
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}

type CartView struct {
	Items []CartLineView `json:"items"`
	Total float64        `json:"total"`
}

type CheckoutResponse struct {
	Message string  `json:"message"`
	OrderID uint    `json:"orderId"`
	Total   float64 `json:"total"`
}
