package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Identity IdentitySvcFacade
	Token    TokenSvcFacade
	Book     BookSvcFacade
	Favorite FavoriteSvcFacade

	// One adapter per external provider, keyed by route.
	GoogleOAuth   OAuthProviderSvc
	FacebookOAuth OAuthProviderSvc
}
