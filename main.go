package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"go-bankledger/auth"
	"go-bankledger/models"
	"go-bankledger/processor"
	"go-bankledger/store"
)

// app wires the core packages together and drives the interactive console.
// The console layer only consumes the programmatic surface of the core: the
// registry, the processor, the authorization engine and the identity
// manager.
type app struct {
	registry  *store.Registry
	identity  *auth.Manager
	authz     *auth.Engine
	sessions  *auth.SessionManager
	processor *processor.Processor
	reader    *bufio.Reader

	current *auth.Principal
	session auth.Session
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	registry := store.NewRegistry()
	identity := auth.NewManager(logger)
	authz := auth.NewEngine(registry)
	proc := processor.NewProcessor(registry, authz, identity, logger)

	a := &app{
		registry:  registry,
		identity:  identity,
		authz:     authz,
		sessions:  auth.NewSessionManager(30 * time.Minute),
		processor: proc,
		reader:    bufio.NewReader(os.Stdin),
	}
	a.seedDemoData()

	fmt.Println("=== BANK LEDGER ===")
	for {
		if !a.login() {
			fmt.Println("Unable to proceed without authentication.")
			return
		}
		if !a.menuLoop() {
			fmt.Println("Goodbye!")
			return
		}
	}
}

// seedDemoData registers the demo admin, two customers with accounts, and
// their login principals. Seeding goes through the same core operations the
// menu uses.
func (a *app) seedDemoData() {
	_, _ = a.registry.CreateCustomer("C001", "Alice Johnson")
	_, _ = a.registry.CreateCustomer("C002", "Bob Smith")
	_, _ = a.registry.CreateAccount("C001", models.Savings, "ACC001", 0.03)
	_, _ = a.registry.CreateAccount("C001", models.Checking, "ACC002", 500)
	_, _ = a.registry.CreateAccount("C002", models.Savings, "ACC003", 0.02)

	admin, _ := auth.NewAdmin("admin", "admin123")
	alice, _ := auth.NewCustomerUser("alice", "alice123", "C001")
	bob, _ := auth.NewCustomerUser("bob", "bob123", "C002")
	_ = a.identity.Register(admin)
	_ = a.identity.Register(alice)
	_ = a.identity.Register(bob)

	_, _ = a.processor.Deposit(admin, "ACC001", 1000)
	_, _ = a.processor.Deposit(admin, "ACC003", 250)
}

// login prompts for credentials with the fixed attempt budget. The failure
// counter lives here, not on the principal.
func (a *app) login() bool {
	fmt.Println("\n--- LOGIN ---")
	for attempt := 1; attempt <= auth.MaxLoginAttempts; attempt++ {
		username := a.prompt("Username")
		password := a.prompt("Password")
		if p, ok := a.identity.Authenticate(username, password); ok {
			a.current = p
			a.session = a.sessions.Issue(p.Username())
			a.identity.LogAction(p.Username(), p.Role(), "LOGIN", "session "+a.session.Token)
			fmt.Printf("Welcome, %s (%s)\n", p.Username(), p.Role())
			if p.PasswordChangeRequired() {
				fmt.Println("! You must change your password before continuing.")
				a.handleChangePassword()
			}
			return true
		}
		fmt.Printf("Invalid credentials (%d/%d)\n", attempt, auth.MaxLoginAttempts)
	}
	return false
}

func (a *app) logout() {
	if a.current != nil {
		a.identity.LogAction(a.current.Username(), a.current.Role(), "LOGOUT", "")
	}
	a.sessions.Revoke(a.session.Token)
	a.current = nil
	a.session = auth.Session{}
}

// menuLoop runs the role-based menu until logout (returns true) or exit
// (returns false).
func (a *app) menuLoop() bool {
	for {
		if _, err := a.sessions.Validate(a.session.Token); err != nil {
			fmt.Println("Session expired, please log in again.")
			a.logout()
			return true
		}
		if a.current.Role() == auth.RoleAdmin {
			a.printAdminMenu()
		} else {
			a.printCustomerMenu()
		}
		choice := a.prompt("Choice")
		switch choice {
		case "0":
			fmt.Println("Logging out...")
			a.logout()
			return true
		case "x", "X":
			a.logout()
			return false
		default:
			a.dispatch(choice)
		}
	}
}

func (a *app) printAdminMenu() {
	fmt.Println(`
--- ADMIN MENU ---
 1. Create customer        5. Create account
 2. View customer          6. View account details
 3. View all customers     7. View all accounts
 4. Delete customer        8. Delete account
 9. Update overdraft limit
10. Create/update profile
11. Apply interest (all savings)
12. Accounts by owner name
13. Accounts by balance
14. View audit trail
15. View transaction history
 0. Logout                 x. Exit`)
}

func (a *app) printCustomerMenu() {
	fmt.Println(`
--- CUSTOMER MENU ---
 6. View account details
15. View transaction history
20. Deposit
21. Withdraw
22. Transfer
23. Change password
 0. Logout                 x. Exit`)
}

// dispatch routes a menu choice after the permission gate. The access check
// on the specific account happens inside the processor.
func (a *app) dispatch(choice string) {
	type menuItem struct {
		perm    auth.Permission
		handler func()
	}
	items := map[string]menuItem{
		"1":  {auth.PermCreateCustomer, a.handleCreateCustomer},
		"2":  {auth.PermViewCustomer, a.handleViewCustomer},
		"3":  {auth.PermViewAllCustomers, a.handleViewAllCustomers},
		"4":  {auth.PermDeleteCustomer, a.handleDeleteCustomer},
		"5":  {auth.PermCreateAccount, a.handleCreateAccount},
		"6":  {auth.PermViewAccountDetails, a.handleViewAccount},
		"7":  {auth.PermViewAllAccounts, a.handleViewAllAccounts},
		"8":  {auth.PermDeleteAccount, a.handleDeleteAccount},
		"9":  {auth.PermUpdateOverdraft, a.handleUpdateOverdraft},
		"10": {auth.PermCreateProfile, a.handleProfile},
		"11": {auth.PermApplyInterest, a.handleApplyInterest},
		"12": {auth.PermSortByName, a.handleSortedByOwner},
		"13": {auth.PermSortByBalance, a.handleSortedByBalance},
		"14": {auth.PermViewAuditTrail, a.handleAuditTrail},
		"15": {auth.PermViewTxHistory, a.handleHistory},
		"20": {auth.PermDeposit, a.handleDeposit},
		"21": {auth.PermWithdraw, a.handleWithdraw},
		"22": {auth.PermTransfer, a.handleTransfer},
		"23": {auth.PermChangePassword, a.handleChangePassword},
	}
	item, ok := items[choice]
	if !ok {
		fmt.Println("Invalid choice.")
		return
	}
	if !a.authz.HasPermission(a.current, item.perm) {
		fmt.Println("This option is not available for your account type.")
		a.identity.LogAction(a.current.Username(), a.current.Role(),
			string(item.perm)+"_DENIED", "permission denied")
		return
	}
	item.handler()
}

// ----- customer & account administration -----

func (a *app) handleCreateCustomer() {
	id := a.prompt("Customer ID (C###)")
	name := a.prompt("Name")
	c, err := a.registry.CreateCustomer(id, name)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("CREATE_CUSTOMER", "customer "+c.CustomerID())
	fmt.Println("Created customer", c.CustomerID())
}

func (a *app) handleViewCustomer() {
	id := a.prompt("Customer ID")
	c, err := a.registry.FindCustomer(id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%s | %s\n", c.CustomerID(), c.Name())
	if p := c.Profile(); p != nil {
		fmt.Printf("  Profile: %s | %s | %s\n", p.Address, p.Phone, p.Email)
	}
	for _, acct := range c.Accounts() {
		fmt.Println("  " + acct.Details())
	}
}

func (a *app) handleViewAllCustomers() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Accounts"})
	for _, c := range a.registry.Customers() {
		table.Append([]string{c.CustomerID(), c.Name(), strconv.Itoa(len(c.Accounts()))})
	}
	table.Render()
}

func (a *app) handleDeleteCustomer() {
	id := a.prompt("Customer ID")
	if err := a.registry.DeleteCustomer(id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("DELETE_CUSTOMER", "customer "+id+" and owned accounts removed")
	fmt.Println("Deleted customer", id)
}

func (a *app) handleCreateAccount() {
	customerID := a.prompt("Owner customer ID")
	accountNo := a.prompt("Account number (ACC###)")
	kind := strings.ToUpper(a.prompt("Kind (savings/checking)"))
	var (
		acct *models.Account
		err  error
	)
	switch models.Kind(kind) {
	case models.Savings:
		rate, perr := a.promptFloat("Interest rate (0-1)")
		if perr != nil {
			fmt.Println("Error:", perr)
			return
		}
		acct, err = a.registry.CreateAccount(customerID, models.Savings, accountNo, rate)
	case models.Checking:
		limit, perr := a.promptFloat("Overdraft limit")
		if perr != nil {
			fmt.Println("Error:", perr)
			return
		}
		acct, err = a.registry.CreateAccount(customerID, models.Checking, accountNo, limit)
	default:
		fmt.Println("Error:", store.ErrUnknownAccountKind)
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("CREATE_ACCOUNT", acct.AccountNo()+" for "+customerID)
	fmt.Println("Created:", acct.Details())
}

func (a *app) handleViewAccount() {
	accountNo := a.prompt("Account number")
	if !a.authz.CanAccess(a.current, accountNo) {
		a.denied("VIEW_ACCOUNT_DETAILS", accountNo)
		return
	}
	acct, err := a.registry.FindAccount(accountNo)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(acct.Details())
}

func (a *app) handleViewAllAccounts() {
	a.renderAccounts(a.registry.Accounts())
}

func (a *app) handleDeleteAccount() {
	accountNo := a.prompt("Account number")
	if err := a.registry.DeleteAccount(accountNo); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("DELETE_ACCOUNT", accountNo)
	fmt.Println("Deleted account", accountNo)
}

func (a *app) handleUpdateOverdraft() {
	accountNo := a.prompt("Checking account number")
	limit, err := a.promptFloat("New overdraft limit")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := a.registry.UpdateOverdraftLimit(accountNo, limit); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("UPDATE_OVERDRAFT", fmt.Sprintf("%s limit $%.2f", accountNo, limit))
	fmt.Println("Overdraft limit updated.")
}

func (a *app) handleProfile() {
	id := a.prompt("Customer ID")
	c, err := a.registry.FindCustomer(id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	address := a.prompt("Address")
	phone := a.prompt("Phone")
	email := a.prompt("Email")
	if err := c.SetProfile(address, phone, email); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.logAction("UPDATE_PROFILE", "customer "+id)
	fmt.Println("Profile saved.")
}

func (a *app) handleApplyInterest() {
	credited := a.registry.ApplyInterestToSavings()
	a.logAction("APPLY_INTEREST", fmt.Sprintf("%d savings accounts credited", credited))
	fmt.Printf("Interest applied to %d savings account(s).\n", credited)
}

func (a *app) handleSortedByOwner() {
	a.renderAccounts(a.registry.AccountsSortedByOwner())
}

func (a *app) handleSortedByBalance() {
	a.renderAccounts(a.registry.AccountsSortedByBalance())
}

func (a *app) handleAuditTrail() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "User", "Role", "Action", "Details"})
	for _, rec := range a.identity.AuditTrail() {
		table.Append([]string{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Username,
			string(rec.Role),
			rec.Action,
			rec.Details,
		})
	}
	table.Render()
}

// ----- transactions -----

func (a *app) handleDeposit() {
	accountNo := a.prompt("Account number")
	amount, err := a.promptFloat("Amount")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	tx, err := a.processor.Deposit(a.current, accountNo, amount)
	if err != nil {
		fmt.Println("Deposit failed:", err)
		return
	}
	fmt.Println("Deposit processed:", tx.TxID())
}

func (a *app) handleWithdraw() {
	accountNo := a.prompt("Account number")
	amount, err := a.promptFloat("Amount")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	tx, err := a.processor.Withdraw(a.current, accountNo, amount)
	if err != nil {
		fmt.Println("Withdrawal failed:", err)
		return
	}
	fmt.Println("Withdrawal processed:", tx.TxID())
}

func (a *app) handleTransfer() {
	from := a.prompt("From account")
	to := a.prompt("To account")
	amount, err := a.promptFloat("Amount")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	tx, err := a.processor.Transfer(a.current, from, to, amount)
	if err != nil {
		fmt.Println("Transfer failed:", err)
		return
	}
	fmt.Println("Transfer processed:", tx.TxID())
}

func (a *app) handleHistory() {
	accountNo := a.prompt("Account number")
	if !a.authz.CanAccess(a.current, accountNo) {
		a.denied("VIEW_TRANSACTION_HISTORY", accountNo)
		return
	}
	history, err := a.processor.HistoryLIFO(accountNo)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(history) == 0 {
		fmt.Println("No transactions for this account.")
		return
	}
	fmt.Printf("%d transaction(s), most recent first:\n", len(history))
	for _, tx := range history {
		fmt.Println("  " + tx.String())
	}
}

func (a *app) handleChangePassword() {
	oldPassword := a.prompt("Current password")
	newPassword := a.prompt("New password")
	replacement, err := a.identity.RotateCredential(a.current.Username(), oldPassword, newPassword)
	if err != nil {
		fmt.Println("Password change failed:", err)
		return
	}
	// The old principal object is stale from here on.
	a.current = replacement
	fmt.Println("Password changed. You remain logged in.")
}

// ----- helpers -----

func (a *app) renderAccounts(accounts []*models.Account) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Account", "Kind", "Owner", "Balance"})
	for _, acct := range accounts {
		table.Append([]string{
			acct.AccountNo(),
			string(acct.Kind()),
			acct.Owner().Name(),
			fmt.Sprintf("$%.2f", acct.Balance()),
		})
	}
	table.Render()
}

func (a *app) denied(action, accountNo string) {
	fmt.Println("Access denied. You can only act on your own accounts.")
	a.identity.LogAction(a.current.Username(), a.current.Role(), action+"_DENIED",
		"access denied for account "+accountNo)
}

func (a *app) logAction(action, details string) {
	a.identity.LogAction(a.current.Username(), a.current.Role(), action, details)
}

func (a *app) prompt(label string) string {
	fmt.Print(label + ": ")
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) promptFloat(label string) (float64, error) {
	raw := a.prompt(label)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}
