package repositories

// RepositoryProvider bundles every repository implementation so the service
// container can be wired from a single value at startup.
type RepositoryProvider struct {
	UserRepo     UserRepository
	AuthLinkRepo AuthLinkRepository
	BookRepo     BookRepository
	FavoriteRepo FavoriteRepository
}
