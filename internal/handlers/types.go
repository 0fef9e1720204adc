package handlers

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		LongURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"longUrl"`
	}
}

// CreateShortURLResponse is the response for a successfully shortened URL.
type CreateShortURLResponse struct {
	Location string `doc:"The short URL location" header:"Location"`
	Body     struct {
		ShortURL string `doc:"The full short URL" example:"http://localhost:8888/aB3xY9" json:"shortUrl"`
		Code     string `doc:"The short code"     example:"aB3xY9"                       json:"code"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3xY9" path:"code"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}
