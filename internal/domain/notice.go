package domain

// Notice is a user-visible message produced by a store operation.
type Notice string

const (
	NoticeNone              Notice = ""
	NoticeAddedToCart       Notice = "added to cart"
	NoticeMaximumReached    Notice = "maximum quantity reached"
	NoticeRemovedFromCart   Notice = "removed from cart"
	NoticeCartCleared       Notice = "cart cleared"
	NoticeAddedToWishlist   Notice = "added to wishlist"
	NoticeAlreadyInWishlist Notice = "already in wishlist"
	NoticeRemovedFromList   Notice = "removed from wishlist"
	NoticeWishlistCleared   Notice = "wishlist cleared"
)
