package storage

import (
	"errors"
	"strings"
)

var ErrVillaNotFound = errors.New("villa not found")

// Category narrows the catalog to one island of the archipelago.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryGrandeTerre Category = "Grande-Terre"
	CategoryBasseTerre  Category = "Basse-Terre"
)

// Categories lists the tabs in display order.
var Categories = []Category{CategoryAll, CategoryGrandeTerre, CategoryBasseTerre}

func (c Category) Label() string {
	if c == CategoryAll {
		return "Toutes"
	}
	return string(c)
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return CategoryAll
}

type Coordinates struct {
	Lat float64
	Lng float64
}

type Villa struct {
	ID          string
	Name        string
	Location    string // "Saint-François, Grande-Terre"
	Price       int    // EUR per night
	Rating      float64
	Reviews     int
	Bedrooms    int
	Guests      int
	Image       string
	Description string
	Amenities   []string
	Coordinates Coordinates
}

// Matches is the catalog filter: the category must appear in the location
// (unless it is CategoryAll), and a non-empty query must appear, ignoring
// case, in the name or the location.
func Matches(v Villa, category Category, query string) bool {
	if category != CategoryAll && category != "" && !strings.Contains(v.Location, string(category)) {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(v.Name), q) ||
		strings.Contains(strings.ToLower(v.Location), q)
}

// DefaultVillas returns the fixture catalog.
func DefaultVillas() []Villa {
	return []Villa{
		{
			ID:          "1",
			Name:        "Villa Colibri",
			Location:    "Saint-François, Grande-Terre",
			Price:       350,
			Rating:      4.9,
			Reviews:     42,
			Bedrooms:    3,
			Guests:      6,
			Image:       "https://picsum.photos/seed/villa1/800/600",
			Description: "Nichée sur les hauteurs de Saint-François, la Villa Colibri offre une vue imprenable sur le lagon. Cette propriété moderne dispose d'une piscine à débordement et d'un accès rapide au golf international. Idéale pour les familles cherchant calme et luxe.",
			Amenities:   []string{"Wifi", "Climatisation", "Piscine", "Parking", "TV", "Cuisine équipée"},
			Coordinates: Coordinates{Lat: 16.25, Lng: -61.27},
		},
		{
			ID:          "2",
			Name:        "Domaine du Lagon",
			Location:    "Sainte-Anne, Grande-Terre",
			Price:       520,
			Rating:      5.0,
			Reviews:     18,
			Bedrooms:    5,
			Guests:      10,
			Image:       "https://picsum.photos/seed/villa2/800/600",
			Description: "Une villa d'exception les pieds dans l'eau. Accès direct à la plage de la Caravelle. Le Domaine du Lagon allie architecture créole traditionnelle et confort ultra-moderne. Service de ménage inclus.",
			Amenities:   []string{"Wifi", "Climatisation", "Piscine", "Parking", "Petit-déjeuner", "Accès plage"},
			Coordinates: Coordinates{Lat: 16.23, Lng: -61.38},
		},
		{
			ID:          "3",
			Name:        "Refuge Tropical",
			Location:    "Deshaies, Basse-Terre",
			Price:       280,
			Rating:      4.7,
			Reviews:     56,
			Bedrooms:    2,
			Guests:      4,
			Image:       "https://picsum.photos/seed/villa3/800/600",
			Description: "Entourée par la forêt tropicale luxuriante de Basse-Terre, cette villa écologique en bois offre une déconnexion totale. Proche de la plage de Grande Anse. Profitez du chant des oiseaux et des couchers de soleil spectaculaires.",
			Amenities:   []string{"Wifi", "Parking", "Jardin", "Hamac", "Barbecue"},
			Coordinates: Coordinates{Lat: 16.30, Lng: -61.79},
		},
		{
			ID:          "4",
			Name:        "Villa Zen",
			Location:    "Le Gosier, Grande-Terre",
			Price:       410,
			Rating:      4.8,
			Reviews:     30,
			Bedrooms:    4,
			Guests:      8,
			Image:       "https://picsum.photos/seed/villa4/800/600",
			Description: "Située au cœur de l'île, la Villa Zen est parfaite pour rayonner. Design épuré, jacuzzi privé et grande terrasse ventilée. À 10 minutes de la marina et des restaurants.",
			Amenities:   []string{"Wifi", "Climatisation", "Jacuzzi", "Parking", "TV", "Lave-linge"},
			Coordinates: Coordinates{Lat: 16.20, Lng: -61.49},
		},
		{
			ID:          "5",
			Name:        "Bungalow des Alizés",
			Location:    "Saint-François, Grande-Terre",
			Price:       190,
			Rating:      4.6,
			Reviews:     84,
			Bedrooms:    1,
			Guests:      2,
			Image:       "https://picsum.photos/seed/villa5/800/600",
			Description: "Un cocon romantique pour les couples. Ce bungalow de charme offre intimité et confort. Piscine partagée dans la résidence sécurisée. Proche de la Pointe des Châteaux.",
			Amenities:   []string{"Wifi", "Climatisation", "Piscine", "Parking", "Kitchenette"},
			Coordinates: Coordinates{Lat: 16.25, Lng: -61.25},
		},
		{
			ID:          "6",
			Name:        "Manoir de la Soufrière",
			Location:    "Saint-Claude, Basse-Terre",
			Price:       600,
			Rating:      4.9,
			Reviews:     12,
			Bedrooms:    6,
			Guests:      12,
			Image:       "https://picsum.photos/seed/villa6/800/600",
			Description: "Une demeure historique rénovée au pied du volcan. Climat frais, parc arboré de 2 hectares. Idéal pour les grands groupes et les amateurs de randonnée. Prestations haut de gamme.",
			Amenities:   []string{"Wifi", "Piscine chauffée", "Parking", "Jardin immense", "Cheminée"},
			Coordinates: Coordinates{Lat: 16.03, Lng: -61.70},
		},
	}
}
