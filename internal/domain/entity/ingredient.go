package entity

type Ingredient struct {
	ID              string `json:"id" firestore:"id"`
	Name            string `json:"name" firestore:"name"`
	MeasurementUnit string `json:"measurement_unit" firestore:"measurementUnit"`
}
