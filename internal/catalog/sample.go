// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package catalog

// SampleItems returns a small built-in catalog used when no catalog file is
// configured. The set deliberately spans genres, decades, and runtimes so
// every interpreter constraint has matching and non-matching items.
func SampleItems() []Item {
	return []Item{
		{
			ID: 1, Title: "Forrest Gump",
			Genres:   []string{"Drama", "Comedy", "Romance"},
			Cast:     []string{"Tom Hanks", "Robin Wright", "Gary Sinise"},
			Overview: "The story of a simple man who unwittingly becomes involved in several historical events.",
			RuntimeMinutes: 142, Popularity: 8.5, ReleaseYear: 1994,
			Director: "Robert Zemeckis", Rating: 8.8,
			Vibes: []string{"feel-good", "light"},
		},
		{
			ID: 2, Title: "The Shawshank Redemption",
			Genres:   []string{"Drama"},
			Cast:     []string{"Tim Robbins", "Morgan Freeman", "Bob Gunton"},
			Overview: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			RuntimeMinutes: 142, Popularity: 9.2, ReleaseYear: 1994,
			Director: "Frank Darabont", Rating: 9.3,
			Vibes: []string{"serious", "thought-provoking"},
		},
		{
			ID: 3, Title: "The Godfather",
			Genres:   []string{"Drama", "Crime"},
			Cast:     []string{"Marlon Brando", "Al Pacino", "James Caan"},
			Overview: "The aging patriarch of an organized crime dynasty transfers control to his reluctant son.",
			RuntimeMinutes: 175, Popularity: 9.0, ReleaseYear: 1972,
			Director: "Francis Ford Coppola", Rating: 9.2,
			Vibes: []string{"dark", "serious"},
		},
		{
			ID: 4, Title: "Pulp Fiction",
			Genres:   []string{"Crime", "Drama"},
			Cast:     []string{"John Travolta", "Samuel L. Jackson", "Uma Thurman"},
			Overview: "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
			RuntimeMinutes: 154, Popularity: 8.9, ReleaseYear: 1994,
			Director: "Quentin Tarantino", Rating: 8.9,
			Vibes: []string{"dark", "exciting"},
		},
		{
			ID: 5, Title: "The Dark Knight",
			Genres:   []string{"Action", "Crime", "Drama"},
			Cast:     []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart"},
			Overview: "When the menace known as the Joker wreaks havoc on Gotham, Batman must accept one of the greatest psychological tests.",
			RuntimeMinutes: 152, Popularity: 9.0, ReleaseYear: 2008,
			Director: "Christopher Nolan", Rating: 9.0,
			Vibes: []string{"dark", "exciting"},
		},
		{
			ID: 6, Title: "Schindler's List",
			Genres:   []string{"Drama", "History"},
			Cast:     []string{"Liam Neeson", "Ralph Fiennes", "Ben Kingsley"},
			Overview: "In German-occupied Poland during World War II, industrialist Oskar Schindler gradually becomes concerned for his Jewish workforce.",
			RuntimeMinutes: 195, Popularity: 8.9, ReleaseYear: 1993,
			Director: "Steven Spielberg", Rating: 8.9,
			Vibes: []string{"serious", "thought-provoking"},
		},
		{
			ID: 7, Title: "The Lord of the Rings: The Return of the King",
			Genres:   []string{"Adventure", "Drama", "Fantasy"},
			Cast:     []string{"Elijah Wood", "Viggo Mortensen", "Ian McKellen"},
			Overview: "Gandalf and Aragorn lead the World of Men against Sauron's army to draw his gaze from Frodo and Sam.",
			RuntimeMinutes: 201, Popularity: 8.9, ReleaseYear: 2003,
			Director: "Peter Jackson", Rating: 9.0,
			Vibes: []string{"exciting"},
		},
		{
			ID: 8, Title: "The Matrix",
			Genres:   []string{"Action", "Sci-Fi"},
			Cast:     []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss"},
			Overview: "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
			RuntimeMinutes: 136, Popularity: 8.7, ReleaseYear: 1999,
			Director: "Lana Wachowski", Rating: 8.7,
			Vibes: []string{"exciting", "thought-provoking"},
		},
		{
			ID: 9, Title: "Goodfellas",
			Genres:   []string{"Biography", "Crime", "Drama"},
			Cast:     []string{"Robert De Niro", "Ray Liotta", "Joe Pesci"},
			Overview: "The story of Henry Hill and his life in the mob, covering his relationship with his wife and his mob partners.",
			RuntimeMinutes: 145, Popularity: 8.7, ReleaseYear: 1990,
			Director: "Martin Scorsese", Rating: 8.7,
			Vibes: []string{"dark", "gritty"},
		},
		{
			ID: 10, Title: "The Silence of the Lambs",
			Genres:   []string{"Crime", "Drama", "Thriller"},
			Cast:     []string{"Jodie Foster", "Anthony Hopkins", "Scott Glenn"},
			Overview: "A young FBI cadet must receive the help of an incarcerated and manipulative cannibal killer to catch another serial killer.",
			RuntimeMinutes: 118, Popularity: 8.6, ReleaseYear: 1991,
			Director: "Jonathan Demme", Rating: 8.6,
			Vibes: []string{"dark", "scary"},
		},
		{
			ID: 11, Title: "Saving Private Ryan",
			Genres:   []string{"Drama", "War"},
			Cast:     []string{"Tom Hanks", "Matt Damon", "Tom Sizemore"},
			Overview: "Following the Normandy landings, a group of U.S. soldiers go behind enemy lines to retrieve a paratrooper whose brothers have been killed in action.",
			RuntimeMinutes: 169, Popularity: 8.6, ReleaseYear: 1998,
			Director: "Steven Spielberg", Rating: 8.6,
			Vibes: []string{"serious", "exciting"},
		},
		{
			ID: 12, Title: "Toy Story",
			Genres:   []string{"Animation", "Comedy", "Family"},
			Cast:     []string{"Tom Hanks", "Tim Allen", "Don Rickles"},
			Overview: "A cowboy doll is profoundly threatened and jealous when a new spaceman figure supplants him as top toy in a boy's room.",
			RuntimeMinutes: 81, Popularity: 8.3, ReleaseYear: 1995,
			Director: "John Lasseter", Rating: 8.3,
			Vibes: []string{"feel-good", "light", "family"},
		},
		{
			ID: 13, Title: "The Big Lebowski",
			Genres:   []string{"Comedy", "Crime"},
			Cast:     []string{"Jeff Bridges", "John Goodman", "Julianne Moore"},
			Overview: "Jeff Dude Lebowski is mistaken for a millionaire of the same name and seeks restitution for his ruined rug with the help of his bowling buddies.",
			RuntimeMinutes: 117, Popularity: 8.1, ReleaseYear: 1998,
			Director: "Joel Coen", Rating: 8.1,
			Vibes: []string{"funny", "light"},
		},
		{
			ID: 14, Title: "Inception",
			Genres:   []string{"Action", "Sci-Fi", "Thriller"},
			Cast:     []string{"Leonardo DiCaprio", "Marion Cotillard", "Tom Hardy"},
			Overview: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a CEO.",
			RuntimeMinutes: 148, Popularity: 8.8, ReleaseYear: 2010,
			Director: "Christopher Nolan", Rating: 8.8,
			Vibes: []string{"exciting", "thought-provoking"},
		},
		{
			ID: 15, Title: "Groundhog Day",
			Genres:   []string{"Comedy", "Fantasy", "Romance"},
			Cast:     []string{"Bill Murray", "Andie MacDowell", "Chris Elliott"},
			Overview: "A weatherman finds himself inexplicably living the same day over and over again in a small comedy of self-improvement and romance.",
			RuntimeMinutes: 101, Popularity: 8.0, ReleaseYear: 1993,
			Director: "Harold Ramis", Rating: 8.0,
			Vibes: []string{"funny", "feel-good", "romantic"},
		},
	}
}
