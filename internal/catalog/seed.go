package catalog

import "github.com/jwalitptl/care-api/internal/model"

// SampleDoctors is the built-in catalog used when no catalog file is configured.
func SampleDoctors() []model.Doctor {
	return []model.Doctor{
		{ID: 1, Name: "Dr. Alana Rueter", Specialty: model.SpecialtyCardiology, Location: "New York, USA", Rating: 4.9, Reviews: 1258, Experience: "10+ years", Image: "https://images.pexels.com/photos/5215024/pexels-photo-5215024.jpeg", Available: true, ConsultationFee: "$150", NextSlot: "Today 10:00 AM"},
		{ID: 2, Name: "Dr. John Wilson", Specialty: model.SpecialtyDermatology, Location: "New York, USA", Rating: 4.8, Reviews: 956, Experience: "8+ years", Image: "https://images.pexels.com/photos/6749778/pexels-photo-6749778.jpeg", Available: false, ConsultationFee: "$120", NextSlot: "Tomorrow 09:00 AM"},
		{ID: 3, Name: "Dr. Sarah Johnson", Specialty: model.SpecialtyNeurology, Location: "New York, USA", Rating: 4.9, Reviews: 1432, Experience: "12+ years", Image: "https://images.pexels.com/photos/5452293/pexels-photo-5452293.jpeg", Available: true, ConsultationFee: "$180", NextSlot: "Today 02:00 PM"},
		{ID: 4, Name: "Dr. Michael Chen", Specialty: model.SpecialtyCardiology, Location: "New York, USA", Rating: 4.7, Reviews: 892, Experience: "15+ years", Image: "https://images.pexels.com/photos/6129507/pexels-photo-6129507.jpeg", Available: true, ConsultationFee: "$160", NextSlot: "Today 04:00 PM"},
		{ID: 5, Name: "Dr. Emily Rodriguez", Specialty: model.SpecialtyPediatrics, Location: "New York, USA", Rating: 4.8, Reviews: 743, Experience: "7+ years", Image: "https://images.pexels.com/photos/5452268/pexels-photo-5452268.jpeg", Available: true, ConsultationFee: "$110", NextSlot: "Tomorrow 11:00 AM"},
		{ID: 6, Name: "Dr. Robert Kim", Specialty: model.SpecialtyOrthopedic, Location: "New York, USA", Rating: 4.6, Reviews: 567, Experience: "9+ years", Image: "https://images.pexels.com/photos/5327921/pexels-photo-5327921.jpeg", Available: false, ConsultationFee: "$140", NextSlot: "Tomorrow 03:00 PM"},
		{ID: 7, Name: "Dr. Lisa Thompson", Specialty: model.SpecialtyGeneral, Location: "New York, USA", Rating: 4.5, Reviews: 423, Experience: "6+ years", Image: "https://images.pexels.com/photos/5452293/pexels-photo-5452293.jpeg", Available: true, ConsultationFee: "$100", NextSlot: "Today 11:00 AM"},
		{ID: 8, Name: "Dr. James Park", Specialty: model.SpecialtyDermatology, Location: "New York, USA", Rating: 4.7, Reviews: 634, Experience: "11+ years", Image: "https://images.pexels.com/photos/6749778/pexels-photo-6749778.jpeg", Available: true, ConsultationFee: "$130", NextSlot: "Today 03:00 PM"},
	}
}
