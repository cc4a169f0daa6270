package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Secciones de la aplicación (pestañas); el acceso de un usuario es un subconjunto de estas.
const (
	SectionConfig      = "config"
	SectionProveedores = "proveedores"
	SectionCompras     = "compras"
	SectionInventario  = "inventario"
	SectionClientes    = "clientes"
	SectionVentas      = "ventas"
	SectionReportes    = "reportes"
)

// Sections todas las secciones en orden de navegación.
var Sections = []string{
	SectionConfig, SectionProveedores, SectionCompras, SectionInventario,
	SectionClientes, SectionVentas, SectionReportes,
}

// IsSection indica si el nombre corresponde a una sección conocida.
func IsSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// BaseAdmin usuario administrador que no puede renombrarse ni eliminarse.
const BaseAdmin = "admin"

// User usuario del sistema (un solo negocio, sin compañía).
// Password solo existe en documentos antiguos en texto plano; se migra a PasswordHash al iniciar sesión.
type User struct {
	Username     string   `json:"username"`
	Password     string   `json:"password,omitempty"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Role         string   `json:"role"`
	Access       []string `json:"access"`
}

// CanAccess: admin accede a todo; un user solo a las secciones de su lista.
func (u User) CanAccess(section string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, s := range u.Access {
		if s == section {
			return true
		}
	}
	return false
}

func (u User) Clone() User {
	u.Access = append([]string(nil), u.Access...)
	return u
}

// Session sesión persistida (usuario activo o nil).
type Session struct {
	Username *string `json:"username"`
}
