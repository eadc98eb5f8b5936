package models

// User matches the users/{uid} document in MongoDB.
type User struct {
	UserUID  string `bson:"userUID" json:"userUID"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Age      int    `bson:"age,omitempty" json:"age,omitempty"`
	Mobile   string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
