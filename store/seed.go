package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"workbridge-api/models"
)

// DemoPassword is the shared login password for every seeded account.
const DemoPassword = "workbridge123"

// MinCost keeps seeding fast; real registrations use DefaultCost.
var demoHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedCategories returns the fixed service taxonomy.
func SeedCategories() []models.Category {
	return []models.Category{
		{
			ID:            "cat-1",
			Name:          "Home Services",
			Icon:          "home",
			Subcategories: []string{"Cleaning", "Plumbing", "Electrical", "Painting", "Carpentry", "Furniture Assembly"},
		},
		{
			ID:            "cat-2",
			Name:          "Professional",
			Icon:          "briefcase",
			Subcategories: []string{"Web Development", "Design", "Content Writing", "Translation", "Accounting", "Legal"},
		},
		{
			ID:            "cat-3",
			Name:          "Personal",
			Icon:          "user",
			Subcategories: []string{"Tutoring", "Fitness Training", "Cooking", "Pet Care", "Personal Shopping"},
		},
		{
			ID:            "cat-4",
			Name:          "Errands",
			Icon:          "clock",
			Subcategories: []string{"Delivery", "Shopping", "Waiting in Line", "Package Pickup"},
		},
		{
			ID:            "cat-5",
			Name:          "Events",
			Icon:          "camera",
			Subcategories: []string{"Photography", "Videography", "DJ Services", "Catering", "Event Planning"},
		},
	}
}

// SeedUsers returns the demo accounts. Every account's password is
// DemoPassword.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:           "user-1",
			Name:         "Rohit Sharma",
			Email:        "rohit@example.com",
			PasswordHash: demoHash,
			Phone:        "+91 9876543210",
			Role:         models.RoleClient,
			Avatar:       "https://images.unsplash.com/photo-1633332755192-727a05c4013d?w=500",
			Rating:       4.8,
			TotalReviews: 15,
			Bio:          "Business owner looking for reliable services",
			Verified:     true,
			Location:     &models.Location{Lat: 28.6139, Lng: 77.2090, Address: "Delhi, India"},
			CreatedAt:    ts("2023-09-15T10:30:00Z"),
		},
		{
			ID:           "user-2",
			Name:         "Priya Singh",
			Email:        "priya@example.com",
			PasswordHash: demoHash,
			Phone:        "+91 9876543211",
			Role:         models.RoleWorker,
			Avatar:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=500",
			Rating:       4.9,
			TotalReviews: 27,
			Bio:          "Professional interior painter with 5 years of experience",
			Skills:       []string{"Painting", "Wall Repair", "Furniture Assembly"},
			Verified:     true,
			Location:     &models.Location{Lat: 28.6129, Lng: 77.2295, Address: "East Delhi, India"},
			CreatedAt:    ts("2023-08-20T15:45:00Z"),
		},
		{
			ID:           "user-3",
			Name:         "Amit Patel",
			Email:        "amit@example.com",
			PasswordHash: demoHash,
			Phone:        "+91 9876543212",
			Role:         models.RoleWorker,
			Avatar:       "https://images.unsplash.com/photo-1566492031773-4f4e44671857?w=500",
			Rating:       4.7,
			TotalReviews: 32,
			Bio:          "Certified plumber specializing in residential work",
			Skills:       []string{"Plumbing", "Installation", "Maintenance"},
			Verified:     true,
			Location:     &models.Location{Lat: 28.5355, Lng: 77.3910, Address: "Noida, UP, India"},
			CreatedAt:    ts("2023-07-10T09:20:00Z"),
		},
		{
			ID:           "user-4",
			Name:         "Neha Gupta",
			Email:        "neha@example.com",
			PasswordHash: demoHash,
			Phone:        "+91 9876543213",
			Role:         models.RoleClient,
			Avatar:       "https://images.unsplash.com/photo-1664575599736-c5197c684153?w=500",
			Rating:       4.6,
			TotalReviews: 8,
			Bio:          "Homemaker looking for household services",
			Verified:     true,
			Location:     &models.Location{Lat: 28.4595, Lng: 77.0266, Address: "Gurugram, HR, India"},
			CreatedAt:    ts("2023-10-05T14:15:00Z"),
		},
		{
			ID:           "user-5",
			Name:         "Raj Kumar",
			Email:        "raj@example.com",
			PasswordHash: demoHash,
			Phone:        "+91 9876543214",
			Role:         models.RoleWorker,
			Avatar:       "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=500",
			Rating:       4.9,
			TotalReviews: 41,
			Bio:          "Full stack web developer with expertise in React and Node.js",
			Skills:       []string{"Web Development", "UI/UX Design", "Mobile App Development"},
			Verified:     true,
			Location:     &models.Location{Lat: 12.9716, Lng: 77.5946, Address: "Bangalore, India"},
			CreatedAt:    ts("2023-06-12T11:50:00Z"),
		},
		{
			ID:           "user-6",
			Name:         "Admin User",
			Email:        "admin@workbridge.com",
			PasswordHash: demoHash,
			Role:         models.RoleAdmin,
			Avatar:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=500",
			Rating:       5.0,
			TotalReviews: 0,
			Verified:     true,
			CreatedAt:    ts("2023-01-01T00:00:00Z"),
		},
	}
}

// SeedTasks returns the demo tasks with their embedded bids. Order matters:
// task ids run task-1 through task-5 in insertion order, which is not the
// same as creation-time order.
func SeedTasks() []models.Task {
	return []models.Task{
		{
			ID:          "task-1",
			Title:       "Bathroom Plumbing Repair",
			Description: "Need to fix a leaking sink and replace the shower head in my bathroom. The sink has been leaking for about a week and water pressure in the shower is very low.",
			Category:    "Home Services",
			Subcategory: "Plumbing",
			ClientID:    "user-1",
			Status:      models.StatusOpen,
			Budget:      models.Budget{Min: 2000, Max: 3500},
			Location:    models.Location{Lat: 28.6139, Lng: 77.2090, Address: "Connaught Place, Delhi, India"},
			Images: []string{
				"https://images.unsplash.com/photo-1585909695284-32d2985ac9c0?w=500",
				"https://images.unsplash.com/photo-1534137667199-675a39f476d4?w=500",
			},
			CreatedAt: ts("2023-11-10T09:30:00Z"),
			Deadline:  ts("2023-11-15T18:00:00Z"),
			Bids: []models.Bid{
				{
					ID:        "bid-1",
					TaskID:    "task-1",
					WorkerID:  "user-3",
					Amount:    2800,
					Message:   "I can fix this in 2 hours. Have all necessary tools and replacement parts.",
					Status:    models.BidPending,
					CreatedAt: ts("2023-11-11T10:15:00Z"),
				},
			},
		},
		{
			ID:          "task-2",
			Title:       "Website Development for Small Business",
			Description: "Looking for a web developer to create a responsive website for my small retail business. Need product catalog, contact form, and about page. Design should be modern and mobile-friendly.",
			Category:    "Professional",
			Subcategory: "Web Development",
			ClientID:    "user-4",
			Status:      models.StatusOpen,
			Budget:      models.Budget{Min: 15000, Max: 30000},
			Location:    models.Location{Lat: 28.4595, Lng: 77.0266, Address: "Sector 29, Gurugram, Haryana, India"},
			Images: []string{
				"https://images.unsplash.com/photo-1547658719-da2b51169166?w=500",
				"https://images.unsplash.com/photo-1499951360447-b19be8fe80f5?w=500",
			},
			CreatedAt: ts("2023-11-08T14:45:00Z"),
			Deadline:  ts("2023-12-10T23:59:00Z"),
			Bids: []models.Bid{
				{
					ID:        "bid-2",
					TaskID:    "task-2",
					WorkerID:  "user-5",
					Amount:    25000,
					Message:   "I specialize in creating modern, responsive websites for small businesses. Can deliver in 3 weeks with all requested features.",
					Status:    models.BidPending,
					CreatedAt: ts("2023-11-09T16:20:00Z"),
				},
			},
		},
		{
			ID:          "task-3",
			Title:       "Living Room Painting",
			Description: "Need to paint my living room (approximately 20x15 feet) with premium quality paint. The walls need minor repairs before painting. I have already purchased the paint (light beige color).",
			Category:    "Home Services",
			Subcategory: "Painting",
			ClientID:    "user-4",
			Status:      models.StatusOpen,
			Budget:      models.Budget{Min: 5000, Max: 8000},
			Location:    models.Location{Lat: 28.4595, Lng: 77.0266, Address: "DLF Phase 4, Gurugram, Haryana, India"},
			Images: []string{
				"https://images.unsplash.com/photo-1562663464-36b9b99558c9?w=500",
				"https://images.unsplash.com/photo-1599619585752-c3edb42a414c?w=500",
			},
			CreatedAt: ts("2023-11-09T11:20:00Z"),
			Deadline:  ts("2023-11-20T18:00:00Z"),
			Bids: []models.Bid{
				{
					ID:        "bid-3",
					TaskID:    "task-3",
					WorkerID:  "user-2",
					Amount:    6500,
					Message:   "I can complete this job in 2 days with wall repairs and proper finishing. Have 5 years of experience in interior painting.",
					Status:    models.BidPending,
					CreatedAt: ts("2023-11-10T09:45:00Z"),
				},
			},
		},
		{
			ID:          "task-4",
			Title:       "Furniture Delivery and Assembly",
			Description: "Need someone to pick up a desk from the furniture store and assemble it at my home. The store is about 10 km from my location. The desk is boxed and weighs approximately 30 kg.",
			Category:    "Home Services",
			Subcategory: "Furniture Assembly",
			ClientID:    "user-1",
			Status:      models.StatusOpen,
			Budget:      models.Budget{Min: 1500, Max: 2500},
			Location:    models.Location{Lat: 28.6129, Lng: 77.2295, Address: "Laxmi Nagar, Delhi, India"},
			Images: []string{
				"https://images.unsplash.com/photo-1595515106969-3bca31fea6e7?w=500",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=500",
			},
			CreatedAt: ts("2023-11-11T13:10:00Z"),
			Deadline:  ts("2023-11-14T20:00:00Z"),
			Bids:      []models.Bid{},
		},
		{
			ID:          "task-5",
			Title:       "Digital Marketing Strategy",
			Description: "Looking for a digital marketing expert to create a 3-month strategy for my online business. Need help with social media, content marketing, and SEO optimization. Budget is negotiable for the right candidate.",
			Category:    "Professional",
			Subcategory: "Marketing",
			ClientID:    "user-1",
			Status:      models.StatusOpen,
			Budget:      models.Budget{Min: 20000, Max: 35000},
			Location:    models.Location{Lat: 28.6139, Lng: 77.2090, Address: "Rajouri Garden, Delhi, India"},
			Images: []string{
				"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=500",
				"https://images.unsplash.com/photo-1533750516457-a7f992034fec?w=500",
			},
			CreatedAt: ts("2023-11-07T16:35:00Z"),
			Deadline:  ts("2023-11-21T23:59:00Z"),
			Bids:      []models.Bid{},
		},
	}
}
