// Package catalog holds the fixed default data the studio seeds on first
// run and restores on a lab reset. Every function returns fresh copies so
// callers can mutate the results freely.
package catalog

import (
	"time"

	"studio-lab-backend/internal/model"
)

// Machines returns the default fabrication-lab roster.
func Machines() []model.Machine {
	now := time.Now()
	return []model.Machine{
		{
			ID:                 "c1",
			Name:               "Shimpo RK-3D Electric Wheel",
			Category:           model.CategoryCeramics,
			Location:           "Ceramics Annex 1",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1593113511335-900504620023?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"High Torque", "Quiet Operation", "30cm Wheelhead"},
			SafetyLevel:        1,
			TrainingRequired:   true,
			MaxDurationMinutes: 120,
			Queue:              []model.QueueEntry{},
		},
		{
			ID:                 "c2",
			Name:               "Skutt KMT-1227 Electric Kiln",
			Category:           model.CategoryCeramics,
			Location:           "Firing Room B",
			Status:             model.StatusInUse,
			Image:              "https://images.unsplash.com/photo-1565193298357-bb6a03f47382?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Touchscreen Controller", "Large Capacity", "Up to Cone 10"},
			SafetyLevel:        3,
			TrainingRequired:   true,
			MaxDurationMinutes: 480,
			Queue: []model.QueueEntry{
				{StudentID: "s101", StudentName: "Jordan S.", Timestamp: now.Add(-time.Hour).UnixMilli(), Priority: 1},
			},
			RequiresIdentity: true,
		},
		{
			ID:                 "w1",
			Name:               "SawStop Cabinet Saw",
			Category:           model.CategoryWood,
			Location:           "Main Wood Lab",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1534353436294-0dbd4bdac845?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Blade Brake Safety", "3HP Motor", "52\" T-Glide Fence"},
			SafetyLevel:        3,
			TrainingRequired:   true,
			MaxDurationMinutes: 45,
			Queue:              []model.QueueEntry{},
			RequiresIdentity:   true,
		},
		{
			ID:                 "w2",
			Name:               "Laguna 14|12 Bandsaw",
			Category:           model.CategoryWood,
			Location:           "Main Wood Lab",
			Status:             model.StatusMaintenance,
			Image:              "https://images.unsplash.com/photo-1504148455328-c376907d081c?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Pyramid Tension System", "Disc Brake", "Balanced Wheels"},
			SafetyLevel:        2,
			TrainingRequired:   true,
			MaxDurationMinutes: 60,
			Queue:              []model.QueueEntry{},
		},
		{
			ID:                 "t1",
			Name:               "Brother PR1055X Embroidery",
			Category:           model.CategoryTextile,
			Location:           "Textile Studio 3",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1550262100-349073a1104e?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"10-Needle Embroidery", "Camera Positioning", "Wireless Link"},
			SafetyLevel:        1,
			TrainingRequired:   true,
			MaxDurationMinutes: 180,
			Queue:              []model.QueueEntry{},
		},
		{
			ID:                 "df1",
			Name:               "Epilog Fusion Pro 48",
			Category:           model.CategoryDigitalFab,
			Location:           "Digi-Fab Hub",
			Status:             model.StatusInUse,
			Image:              "https://images.unsplash.com/photo-1614705592520-a61665a3885d?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"120W Laser", "IRIS Camera System", "Touchscreen"},
			SafetyLevel:        2,
			TrainingRequired:   true,
			MaxDurationMinutes: 45,
			Queue: []model.QueueEntry{
				{StudentID: "s202", StudentName: "Casey L.", Timestamp: now.Add(-20 * time.Minute).UnixMilli(), Priority: 2, IsAnonymous: true},
			},
		},
		{
			ID:                 "df2",
			Name:               "Ultimaker S5 3D Printer",
			Category:           model.CategoryDigitalFab,
			Location:           "Digi-Fab Hub",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1581092580497-e0d23cbdf1dc?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Dual Extrusion", "Large Build Volume", "Active Leveling"},
			SafetyLevel:        1,
			TrainingRequired:   true,
			MaxDurationMinutes: 1440,
			Queue:              []model.QueueEntry{},
		},
		{
			ID:                 "m1",
			Name:               "Miller Multimatic 220",
			Category:           model.CategoryMetal,
			Location:           "Metal Shop South",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Multi-Process Welding", "Auto-Set Elite", "Digital Display"},
			SafetyLevel:        3,
			TrainingRequired:   true,
			MaxDurationMinutes: 60,
			Queue:              []model.QueueEntry{},
			RequiresIdentity:   true,
		},
		{
			ID:                 "m2",
			Name:               "Precision Metal Lathe",
			Category:           model.CategoryMetal,
			Location:           "Metal Shop South",
			Status:             model.StatusInUse,
			Image:              "https://images.unsplash.com/photo-1620614917464-90a6e87f551b?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Variable Speed", "Digital Readout", "High Precision"},
			SafetyLevel:        3,
			TrainingRequired:   true,
			MaxDurationMinutes: 120,
			Queue: []model.QueueEntry{
				{StudentID: "s404", StudentName: "Sam T.", Timestamp: now.Add(-15 * time.Minute).UnixMilli(), Priority: 1},
			},
			RequiresIdentity: true,
		},
		{
			ID:                 "l1",
			Name:               "Artisan 3000 Stitcher",
			Category:           model.CategoryLeather,
			Location:           "Soft Goods Lab",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1598300042247-d04527cbc3f0?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Cylinder Arm", "Walking Foot", "Heavy Duty Stitching"},
			SafetyLevel:        2,
			TrainingRequired:   true,
			MaxDurationMinutes: 60,
			Queue:              []model.QueueEntry{},
		},
		{
			ID:                 "r1",
			Name:               "Formlabs Form 3B SLA",
			Category:           model.CategoryResin,
			Location:           "Clean Fabrication Lab",
			Status:             model.StatusAvailable,
			Image:              "https://images.unsplash.com/photo-1631035222329-3715104d5386?auto=format&fit=crop&q=80&w=1200",
			Specifications:     []string{"Biocompatible Ready", "LFS Technology", "Automated Wash"},
			SafetyLevel:        2,
			TrainingRequired:   true,
			MaxDurationMinutes: 720,
			Queue:              []model.QueueEntry{},
		},
	}
}

// FacultySlots returns the default consultation schedule.
func FacultySlots() []model.FacultySlot {
	return []model.FacultySlot{
		{ID: "f1", FacultyName: "Prof. Christian Saumya", StartTime: "2024-05-12T10:00:00", EndTime: "2024-05-12T11:00:00"},
		{ID: "f2", FacultyName: "Prof. Shatabhisha", StartTime: "2024-05-12T14:30:00", EndTime: "2024-05-12T15:30:00"},
		{ID: "f3", FacultyName: "Prof. Ruchin Soni", StartTime: "2024-05-13T11:00:00", EndTime: "2024-05-13T12:00:00"},
		{ID: "f4", FacultyName: "Prof. Deepak", StartTime: "2024-05-13T15:00:00", EndTime: "2024-05-13T16:00:00"},
		{ID: "f5", FacultyName: "Prof. Yuti", StartTime: "2024-05-14T09:30:00", EndTime: "2024-05-14T10:30:00"},
		{ID: "f6", FacultyName: "Prof. Jagan", StartTime: "2024-05-14T14:00:00", EndTime: "2024-05-14T15:00:00"},
		{ID: "f7", FacultyName: "Prof. Sarvesh", StartTime: "2024-05-15T10:00:00", EndTime: "2024-05-15T11:00:00"},
	}
}

// Assignments returns the starter project records.
func Assignments() []model.Assignment {
	return []model.Assignment{
		{
			ID:             "1",
			Title:          "Street Food Sustainable Packaging",
			Description:    "Developing biodegradable alternatives for local tea stalls and chaat vendors in Ahmedabad.",
			Deadline:       "2024-05-15",
			Status:         model.StagePrototype,
			Progress:       65,
			RiskAssessment: model.RiskMedium,
		},
		{
			ID:             "2",
			Title:          "ASHA Worker Rural Health App",
			Description:    "Service design and UI/UX for maternal health tracking in rural Gujarat clusters.",
			Deadline:       "2024-05-20",
			Status:         model.StageDesign,
			Progress:       80,
			RiskAssessment: model.RiskLow,
		},
		{
			ID:             "3",
			Title:          "Ergonomic Loom for Ikat Weavers",
			Description:    "Redesigning handloom components to reduce lower back strain for traditional artisans.",
			Deadline:       "2024-06-05",
			Status:         model.StageResearch,
			Progress:       25,
			RiskAssessment: model.RiskHigh,
		},
	}
}

// Profile returns the default local user.
func Profile() model.Profile {
	return model.Profile{
		Name:      "Kavin Sonigara",
		Email:     "kavin.s@university.edu",
		StudentID: "ku id 2503u0120",
		Bio:       "Product Design student passionate about sustainable UX and local craft integration.",
		TrainingCompleted: []model.MachineCategory{
			model.CategoryCeramics,
			model.CategoryTextile,
			model.CategoryDigitalFab,
			model.CategoryWood,
			model.CategoryMetal,
			model.CategoryLeather,
			model.CategoryResin,
		},
		ProfileImage: "https://picsum.photos/seed/KavinSonigara/160/160",
	}
}

// Materials returns the default marketplace listings.
func Materials() []model.Material {
	return []model.Material{
		{
			ID: "mat-clay-1", Name: "Stoneware Clay", Category: model.CategoryCeramics,
			Vendors: []model.MaterialVendor{
				{ID: "v-clay-1", Name: "Morbi Ceramic Supplies", Price: 35.00, DistanceKm: 180, DeliveryDays: 4},
				{ID: "v-clay-2", Name: "Ahmedabad Clay Hub", Price: 42.00, DistanceKm: 12, DeliveryDays: 1},
			},
		},
		{
			ID: "mat-wood-1", Name: "Mango/Pine Wood Planks", Category: model.CategoryWood,
			Vendors: []model.MaterialVendor{
				{ID: "v-wood-1", Name: "Ahmedabad Timber Mart", Price: 210.00, DistanceKm: 8, DeliveryDays: 2},
				{ID: "v-wood-2", Name: "Plywood Dealers Vatva", Price: 180.00, DistanceKm: 15, DeliveryDays: 3},
			},
		},
		{
			ID: "mat-wood-2", Name: "Teak Wood (Premium)", Category: model.CategoryWood,
			Vendors: []model.MaterialVendor{
				{ID: "v-teak-1", Name: "Ahmedabad Import Yards", Price: 3500.00, DistanceKm: 25, DeliveryDays: 5},
				{ID: "v-teak-2", Name: "Elite Hardwoods GIDC", Price: 4200.00, DistanceKm: 30, DeliveryDays: 4},
			},
		},
		{
			ID: "mat-wood-3", Name: "Plywood / MDF (8x4 ft)", Category: model.CategoryWood,
			Vendors: []model.MaterialVendor{
				{ID: "v-ply-1", Name: "Hardware Market City", Price: 85.00, DistanceKm: 5, DeliveryDays: 1},
				{ID: "v-ply-2", Name: "Eco Wood Solutions", Price: 95.00, DistanceKm: 22, DeliveryDays: 2},
			},
		},
		{
			ID: "mat-metal-1", Name: "Brass Sheets/Rods", Category: model.CategoryMetal,
			Vendors: []model.MaterialVendor{
				{ID: "v-brass-1", Name: "Jamnagar Brass Works", Price: 580.00, DistanceKm: 310, DeliveryDays: 6},
				{ID: "v-brass-2", Name: "Ahmedabad Metal Traders", Price: 650.00, DistanceKm: 10, DeliveryDays: 1},
			},
		},
		{
			ID: "mat-metal-2", Name: "Mild Steel (MS) Sheets", Category: model.CategoryMetal,
			Vendors: []model.MaterialVendor{
				{ID: "v-ms-1", Name: "Vatva Fabrication Supply", Price: 62.00, DistanceKm: 12, DeliveryDays: 1},
				{ID: "v-ms-2", Name: "Industrial Steel Mart", Price: 58.00, DistanceKm: 45, DeliveryDays: 3},
			},
		},
		{
			ID: "mat-metal-3", Name: "Stainless Steel (SS 304)", Category: model.CategoryMetal,
			Vendors: []model.MaterialVendor{
				{ID: "v-ss-1", Name: "SS Industrial Hub", Price: 220.00, DistanceKm: 18, DeliveryDays: 2},
				{ID: "v-ss-2", Name: "Metal Market Central", Price: 240.00, DistanceKm: 6, DeliveryDays: 1},
			},
		},
		{
			ID: "mat-metal-4", Name: "Aluminum Sheets/Sections", Category: model.CategoryMetal,
			Vendors: []model.MaterialVendor{
				{ID: "v-al-1", Name: "Alu-Pro Sections", Price: 270.00, DistanceKm: 14, DeliveryDays: 1},
				{ID: "v-al-2", Name: "Gujarat Metal Mart", Price: 290.00, DistanceKm: 20, DeliveryDays: 2},
			},
		},
		{
			ID: "mat-stone-1", Name: "Float / Toughened Glass", Category: model.CategoryStone,
			Vendors: []model.MaterialVendor{
				{ID: "v-glass-1", Name: "Glass Processors Naroda", Price: 140.00, DistanceKm: 15, DeliveryDays: 3},
				{ID: "v-glass-2", Name: "Ahmedabad Glass Art", Price: 180.00, DistanceKm: 9, DeliveryDays: 2},
			},
		},
		{
			ID: "mat-resin-1", Name: "Epoxy Resin Kits", Category: model.CategoryResin,
			Vendors: []model.MaterialVendor{
				{ID: "v-epoxy-1", Name: "Ahmedabad Chemical Depot", Price: 575.00, DistanceKm: 11, DeliveryDays: 1},
				{ID: "v-epoxy-2", Name: "Prototyping Resins", Price: 650.00, DistanceKm: 35, DeliveryDays: 2},
			},
		},
		{
			ID: "mat-resin-2", Name: "Polyester Resin", Category: model.CategoryResin,
			Vendors: []model.MaterialVendor{
				{ID: "v-poly-1", Name: "Industrial Chemicals Hub", Price: 325.00, DistanceKm: 25, DeliveryDays: 2},
				{ID: "v-poly-2", Name: "Composite Mat Depot", Price: 300.00, DistanceKm: 40, DeliveryDays: 3},
			},
		},
		{
			ID: "mat-resin-3", Name: "Silicone Rubber (RTV)", Category: model.CategoryResin,
			Vendors: []model.MaterialVendor{
				{ID: "v-sil-1", Name: "Mold Making Supplies", Price: 1250.00, DistanceKm: 15, DeliveryDays: 2},
				{ID: "v-sil-2", Name: "RTV Silicone Mart", Price: 1400.00, DistanceKm: 8, DeliveryDays: 1},
			},
		},
		{
			ID: "mat-resin-4", Name: "Fiberglass Mat (Roll)", Category: model.CategoryResin,
			Vendors: []model.MaterialVendor{
				{ID: "v-fiber-1", Name: "Fiberglass Distributors", Price: 160.00, DistanceKm: 20, DeliveryDays: 2},
				{ID: "v-fiber-2", Name: "Composite Mat Mart", Price: 185.00, DistanceKm: 5, DeliveryDays: 1},
			},
		},
	}
}
