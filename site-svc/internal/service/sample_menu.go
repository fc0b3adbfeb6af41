package service

import "flavor-heaven/site-svc/internal/domain"

// SampleMenu is served whenever the menu repository fails or is empty.
func SampleMenu() []domain.MenuItem {
	items := []domain.MenuItem{
		{ID: "bruschetta-1", Name: "Bruschetta", Description: "Grilled bread topped with fresh tomatoes, basil, and mozzarella", Price: 8.99, Image: "https://images.unsplash.com/photo-1572695157366-5e585ab2b69f", Category: domain.CategoryStarters, Dietary: []string{domain.TagVegetarian}, Popular: true},
		{ID: "calamari-1", Name: "Fried Calamari", Description: "Crispy fried squid rings served with marinara sauce", Price: 12.99, Image: "https://diethood.com/wp-content/uploads/2021/08/air-fryer-calamari-8.jpg", Category: domain.CategoryStarters},
		{ID: "wings-1", Name: "Buffalo Wings", Description: "Spicy chicken wings with blue cheese dip", Price: 11.99, Image: "https://easychickenrecipes.com/wp-content/uploads/2023/08/featured-buffalo-wings-recipe.jpg", Category: domain.CategoryStarters, Dietary: []string{domain.TagSpicy}, Spicy: true, Popular: true},

		{ID: "salmon-1", Name: "Grilled Salmon", Description: "Fresh Atlantic salmon with lemon butter sauce and seasonal vegetables", Price: 24.99, Image: "https://www.thecookierookie.com/wp-content/uploads/2023/05/featured-grilled-salmon-recipe.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagGlutenFree}, Popular: true},
		{ID: "steak-1", Name: "Wagyu Steak", Description: "Premium Wagyu beef steak with red wine reduction and truffle mashed potatoes", Price: 39.99, Image: "https://images.unsplash.com/photo-1544025162-d76694265947", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagGlutenFree}, Popular: true},
		{ID: "biryani-1", Name: "Chicken Biryani", Description: "Aromatic basmati rice with tender chicken, exotic spices, and saffron", Price: 18.99, Image: "https://www.cubesnjuliennes.com/wp-content/uploads/2020/07/Chicken-Biryani-Recipe.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagSpicy}, Spicy: true, Popular: true},
		{ID: "pasta-1", Name: "Truffle Pasta", Description: "Homemade fettuccine with black truffle cream sauce and wild mushrooms", Price: 22.99, Image: "https://dinnerthendessert.com/wp-content/uploads/2023/07/Truffle-Pasta-17.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagVegetarian}},
		{ID: "nihari-1", Name: "Beef Nihari", Description: "Traditional Pakistani slow-cooked beef stew with aromatic spices, garnished with fresh ginger and cilantro", Price: 19.99, Image: "https://i.ytimg.com/vi/vitJTfvnSI8/hq720.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagSpicy}, Spicy: true},
		{ID: "karahi-1", Name: "Chicken Karahi", Description: "Spicy Pakistani chicken curry cooked in a wok with tomatoes, green chilies, and freshly ground spices", Price: 17.99, Image: "https://kfoods.com/images1/newrecipeicon/red-chicken-karahi_12370.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagSpicy}, Spicy: true, Popular: true},
		{ID: "haleem-1", Name: "Haleem", Description: "Slow-cooked Pakistani stew with wheat, lentils, and tender shredded meat, topped with fried onions and lemon", Price: 16.99, Image: "https://headbangerskitchen.com/wp-content/uploads/2024/07/HALEEM-Horizontal1.jpg", Category: domain.CategoryMainDishes, Dietary: []string{domain.TagSpicy}, Spicy: true},

		{ID: "burger-1", Name: "Zinger Burger", Description: "Crispy chicken patty with fresh lettuce, tomatoes, and spicy mayo sauce", Price: 12.99, Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd", Category: domain.CategoryFastFood, Dietary: []string{domain.TagSpicy}, Spicy: true, Popular: true},
		{ID: "pizza-1", Name: "Margherita Pizza", Description: "Classic Italian pizza with fresh mozzarella, tomatoes, and basil", Price: 16.99, Image: "https://allforpizza.com/wp-content/uploads/2022/07/1460A7EC-CF3B-40E8-B05F-A21E12E85EC6.jpeg", Category: domain.CategoryFastFood, Dietary: []string{domain.TagVegetarian}, Popular: true},
		{ID: "pasta-alfredo-1", Name: "Chicken Alfredo", Description: "Creamy Alfredo fettuccine pasta with grilled chicken and herbs", Price: 15.99, Image: "https://eatinginaninstant.com/wp-content/uploads/2022/08/IP-Chicken-Alfredo-8-1200.jpg", Category: domain.CategoryFastFood},

		{ID: "chocolate-cake-1", Name: "Chocolate Cake", Description: "Rich and moist chocolate cake with creamy chocolate frosting and berries", Price: 7.99, Image: "https://images.unsplash.com/photo-1578985545062-69928b1d9587", Category: domain.CategoryDesserts, Dietary: []string{domain.TagVegetarian}, Popular: true},
		{ID: "ice-cream-1", Name: "Ice Cream Sundae", Description: "Premium vanilla ice cream with chocolate sauce, nuts, and cherry", Price: 6.99, Image: "https://www.keep-calm-and-eat-ice-cream.com/wp-content/uploads/2022/08/Ice-cream-sundae-hero-11.jpg", Category: domain.CategoryDesserts, Dietary: []string{domain.TagVegetarian}},
		{ID: "tiramisu-1", Name: "Tiramisu", Description: "Classic Italian coffee-flavored dessert with mascarpone cheese", Price: 8.99, Image: "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9", Category: domain.CategoryDesserts, Dietary: []string{domain.TagVegetarian}, Popular: true},
	}
	for i := range items {
		items[i].Available = true
	}
	return items
}
